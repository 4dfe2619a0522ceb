package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/egoview/egoview/pkg/cache"
)

// cacheKinds are the entry kinds the file cache groups on disk. "misc"
// catches keys written without a kind prefix.
var cacheKinds = []string{cache.KindLayout, cache.KindArtifact, "misc"}

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. With no argument
// it drops everything; with a kind argument it drops only layouts or only
// artifacts.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "clear [kind]",
		Short:     "Drop cached entries (optionally only layout or artifact)",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: cacheKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			kinds := cacheKinds
			if len(args) == 1 {
				kinds = args[:1]
			}

			removed := 0
			for _, kind := range kinds {
				sub := filepath.Join(dir, kind)
				n, err := countCacheEntries(sub)
				if err != nil {
					return err
				}
				if n == 0 {
					continue
				}
				if err := os.RemoveAll(sub); err != nil {
					return err
				}
				removed += n
			}

			if removed == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Dropped %d cached entries", removed)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// countCacheEntries counts regular files under dir. A missing dir counts as
// empty.
func countCacheEntries(dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries just don't count
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
