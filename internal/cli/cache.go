package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCacheCmd exposes maintenance over the persistent tier. The volatile
// tier needs none: it dies with the process.
func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the persistent cache tier",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "info",
			Short: "Show cache location, entry count, and size",
			RunE: func(cmd *cobra.Command, _ []string) error {
				if a.fileStore == nil {
					cmd.Println("persistent cache is disabled")
					return nil
				}
				count, err := a.fileStore.Count()
				if err != nil {
					return err
				}
				size, err := a.fileStore.Size()
				if err != nil {
					return err
				}
				cmd.Printf("directory: %s\nentries:   %d\nsize:      %d bytes\n",
					a.fileStore.Directory(), count, size)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every cached entry",
			RunE: func(cmd *cobra.Command, _ []string) error {
				if a.fileStore == nil {
					return fmt.Errorf("persistent cache is disabled")
				}
				if err := a.fileStore.Clear(); err != nil {
					return err
				}
				cmd.Println("cache cleared")
				return nil
			},
		},
		&cobra.Command{
			Use:   "cleanup",
			Short: "Remove only expired entries",
			RunE: func(cmd *cobra.Command, _ []string) error {
				if a.fileStore == nil {
					return fmt.Errorf("persistent cache is disabled")
				}
				if err := a.fileStore.CleanupExpired(); err != nil {
					return err
				}
				cmd.Println("expired entries removed")
				return nil
			},
		},
	)

	return cmd
}
