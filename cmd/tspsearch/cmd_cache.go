package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tspsearch/distance"
)

var errCacheDisabled = errors.New("distance cache is disabled (cache.enabled=false)")

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the persistent distance cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Print entry count and this process's hit ratio",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withCache(func(c *distance.BadgerCache) error {
					st, err := c.Stats()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "entries: %d\n", st.Entries)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every cached distance",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withCache(func(c *distance.BadgerCache) error {
					if err := c.Clear(); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
					return nil
				})
			},
		},
	)

	return cmd
}

func (a *app) withCache(fn func(*distance.BadgerCache) error) error {
	cache, err := a.openCache()
	if err != nil {
		return err
	}
	if cache == nil {
		return errCacheDisabled
	}
	defer a.closeCache(cache)

	return fn(cache)
}
