// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/bbc/mosromgr-sub000/internal/store"
	"github.com/bbc/mosromgr-sub000/pkg/mostype"
)

var (
	inspectFile   string
	inspectBucket string
	inspectPrefix string
	inspectKey    string

	showStartTime bool
	showEndTime   bool
	showDuration  bool
	showStories   bool
	showItems     bool
	showNotes     bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect a roCreate message",
	Long:  "Inspect a roCreate message from a local file or an S3 object and report its timing, stories, items and notes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := inspectMessage(cmd)
		if err != nil {
			return err
		}
		ro, err := mostype.NewRunningOrder(m)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", ro.Slug(), ro.ROID())
		if showStartTime {
			printTime(out, "Start time", ro.StartTime)
		}
		if showEndTime {
			printTime(out, "End time", ro.EndTime)
		}
		if showDuration {
			fmt.Fprintf(out, "Duration: %s\n", time.Duration(ro.Duration()*float64(time.Second)))
		}
		if showStories || showItems || showNotes {
			printStories(out, ro)
		}
		return nil
	},
}

func init() {
	f := inspectCmd.Flags()
	f.StringVarP(&inspectFile, "file", "f", "", "path to a local MOS file")
	f.StringVarP(&inspectBucket, "bucket", "b", "", "S3 bucket name")
	f.StringVarP(&inspectPrefix, "prefix", "p", "", "S3 key prefix")
	f.StringVarP(&inspectKey, "key", "k", "", "S3 object key (relative to prefix)")
	f.BoolVar(&showStartTime, "start-time", false, "show the programme start time")
	f.BoolVar(&showEndTime, "end-time", false, "show the programme end time")
	f.BoolVar(&showDuration, "duration", false, "show the total programme duration")
	f.BoolVarP(&showStories, "stories", "s", false, "list the stories")
	f.BoolVarP(&showItems, "items", "i", false, "list each story's items")
	f.BoolVarP(&showNotes, "notes", "n", false, "list each story's production notes")
}

func inspectMessage(cmd *cobra.Command) (*mostype.Message, error) {
	if inspectFile != "" {
		return mostype.FromFile(inspectFile)
	}
	bucket := inspectBucket
	if bucket == "" {
		bucket = cfg.Bucket
	}
	if bucket == "" || inspectKey == "" {
		return nil, errors.New("either --file or --bucket and --key are required")
	}
	prefix := inspectPrefix
	if prefix == "" {
		prefix = cfg.Prefix
	}
	client, err := store.New(cmd.Context(), bucket)
	if err != nil {
		return nil, err
	}
	b, err := client.Fetch(cmd.Context(), prefix+inspectKey)
	if err != nil {
		return nil, err
	}
	return mostype.FromBytes(b)
}

func printTime(w io.Writer, label string, get func() (time.Time, bool)) {
	if t, ok := get(); ok {
		fmt.Fprintf(w, "%s: %s\n", label, t.Format(time.RFC3339))
	} else {
		fmt.Fprintf(w, "%s: unknown\n", label)
	}
}

func printStories(w io.Writer, ro *mostype.RunningOrder) {
	for _, story := range ro.Stories() {
		slug := story.Slug()
		if slug == "" {
			slug, _ = story.ID()
		}
		if d, ok := story.Duration(); ok {
			fmt.Fprintf(w, "- %s (%s)\n", slug, time.Duration(d*float64(time.Second)))
		} else {
			fmt.Fprintf(w, "- %s\n", slug)
		}
		if showItems {
			for _, item := range story.Items() {
				fmt.Fprintf(w, "  - %s\n", item.Slug())
				if showNotes {
					if note := item.Note(); note != "" {
						fmt.Fprintf(w, "    note: %s\n", note)
					}
				}
			}
		} else if showNotes {
			for _, item := range story.Items() {
				if note := item.Note(); note != "" {
					fmt.Fprintf(w, "  note: %s\n", note)
				}
			}
		}
	}
}
