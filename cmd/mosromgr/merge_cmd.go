// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bbc/mosromgr-sub000/internal/log"
	"github.com/bbc/mosromgr-sub000/internal/store"
	"github.com/bbc/mosromgr-sub000/pkg/moscollection"
)

var (
	mergeFiles  []string
	mergeBucket string
	mergePrefix string
	mergeSuffix string
	mergeOut    string

	mergeIncomplete bool
	mergeNonStrict  bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge a batch of MOS messages into one running order",
	Long:  "Merge a complete set of MOS messages, from local files or an S3 prefix, into the final running order document.",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := moscollection.Options{
			AllowIncomplete: mergeIncomplete,
			NonStrict:       mergeNonStrict,
		}
		c, err := mergeCollection(cmd, opts)
		if err != nil {
			return err
		}
		if err := c.Merge(); err != nil {
			return err
		}
		for _, d := range c.Diagnostics() {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", d)
		}

		if mergeOut == "" {
			fmt.Fprintln(cmd.OutOrStdout(), c.String())
			return nil
		}
		f, err := os.Create(mergeOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := c.RO().WriteTo(f); err != nil {
			return fmt.Errorf("write %s: %w", mergeOut, err)
		}
		logger := log.WithComponent("cli")
		logger.Info().Str(log.FieldRoID, c.ROID()).Str(log.FieldPath, mergeOut).Msg("wrote merged running order")
		return nil
	},
}

func init() {
	f := mergeCmd.Flags()
	f.StringSliceVarP(&mergeFiles, "file", "f", nil, "local MOS files to merge")
	f.StringVarP(&mergeBucket, "bucket", "b", "", "S3 bucket name")
	f.StringVarP(&mergePrefix, "prefix", "p", "", "S3 key prefix")
	f.StringVar(&mergeSuffix, "suffix", "", "S3 key suffix filter")
	f.StringVarP(&mergeOut, "out", "o", "", "output file (default stdout)")
	f.BoolVar(&mergeIncomplete, "incomplete", false, "allow a batch without a roDelete")
	f.BoolVar(&mergeNonStrict, "non-strict", false, "record fatal merge failures instead of aborting")
}

func mergeCollection(cmd *cobra.Command, opts moscollection.Options) (*moscollection.Collection, error) {
	if len(mergeFiles) > 0 {
		return moscollection.FromFiles(mergeFiles, opts)
	}
	bucket := mergeBucket
	if bucket == "" {
		bucket = cfg.Bucket
	}
	if bucket == "" {
		return nil, errors.New("either --file or --bucket is required")
	}
	prefix := mergePrefix
	if prefix == "" {
		prefix = cfg.Prefix
	}
	suffix := mergeSuffix
	if suffix == "" {
		suffix = cfg.Suffix
	}
	client, err := store.New(cmd.Context(), bucket)
	if err != nil {
		return nil, err
	}
	keys, err := client.List(cmd.Context(), prefix, suffix)
	if err != nil {
		return nil, err
	}
	return moscollection.FromKeys(cmd.Context(), client, keys, opts)
}
