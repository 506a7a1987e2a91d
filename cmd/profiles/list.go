package profiles

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/riftline/guidecrawl/cmd/common"
	internalprofiles "github.com/riftline/guidecrawl/internal/profiles"
)

// newListCommand creates the profiles list command.
func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configured site profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewDeps()
			if err != nil {
				return err
			}

			manager, err := internalprofiles.Load(deps.Config.Crawler.ProfilesDir, deps.Logger)
			if err != nil {
				return fmt.Errorf("failed to load profiles: %w", err)
			}

			renderProfiles(manager.List())
			return nil
		},
	}
}

// renderProfiles displays the profiles in a table.
func renderProfiles(list []*internalprofiles.Profile) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Base Domain", "Locale", "Listings", "Link Selectors", "Tags"})

	for _, profile := range list {
		t.AppendRow(table.Row{
			profile.Name,
			profile.BaseDomain,
			profile.Locale,
			len(profile.ListingURLs),
			len(profile.LinkSelectors),
			strings.Join(profile.Tags, ", "),
		})
	}

	t.Render()
}
