package profiles

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riftline/guidecrawl/cmd/common"
	internalprofiles "github.com/riftline/guidecrawl/internal/profiles"
)

// newValidateCommand creates the profiles validate command. Loading already
// validates every profile file, so a successful load means all profiles are
// well formed.
func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate all configured site profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewDeps()
			if err != nil {
				return err
			}

			manager, err := internalprofiles.Load(deps.Config.Crawler.ProfilesDir, deps.Logger)
			if err != nil {
				return fmt.Errorf("profile validation failed: %w", err)
			}

			fmt.Printf("All %d profiles are valid\n", len(manager.List()))
			return nil
		},
	}
}
