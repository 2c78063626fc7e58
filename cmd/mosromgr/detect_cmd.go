// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bbc/mosromgr-sub000/pkg/mostype"
)

var detectCmd = &cobra.Command{
	Use:   "detect FILE...",
	Short: "Detect the MOS message type of each file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := false
		for _, path := range args {
			m, err := mostype.FromFile(path)
			switch {
			case err == nil:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s%s\n", path, m.Kind(), completedSuffix(m))
			case errors.Is(err, mostype.ErrIgnoredType):
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ignored message type\n", path)
			case errors.Is(err, mostype.ErrUnknownType):
				fmt.Fprintf(cmd.OutOrStdout(), "%s: unknown message type\n", path)
				failed = true
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid (%v)\n", path, err)
				failed = true
			}
		}
		if failed {
			return errors.New("some files could not be detected")
		}
		return nil
	},
}

// completedSuffix marks a roCreate that is itself a previously merged,
// closed running order document.
func completedSuffix(m *mostype.Message) string {
	if m.Kind() != mostype.KindRunningOrder {
		return ""
	}
	ro, err := mostype.NewRunningOrder(m)
	if err == nil && ro.Completed() {
		return " (completed)"
	}
	return ""
}
