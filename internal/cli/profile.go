package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/arith/internal/proptest"
)

// ProfileView is the printed form of a property-test profile.
type ProfileView struct {
	Name        string `json:"name"`
	MaxExamples int    `json:"max_examples"`
	DeadlineMS  int    `json:"deadline_ms"`
	Verbosity   string `json:"verbosity"`
	Seed        uint64 `json:"seed,omitempty"`
}

func (v ProfileView) String() string {
	seed := "random"
	if v.Seed != 0 {
		seed = strconv.FormatUint(v.Seed, 10)
	}
	return fmt.Sprintf("profile:      %s\nmax_examples: %d\ndeadline_ms:  %d\nverbosity:    %s\nseed:         %s",
		v.Name, v.MaxExamples, v.DeadlineMS, v.Verbosity, seed)
}

// NewProfileCommand creates the profile command.
func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profile [name]",
		Short: "Show the property-test profile",
		Long: `Show the property-test profile.

Without a name the active profile is resolved the same way the test
suite resolves it: TESTING_PROFILE (default "debug"), extra profiles
from the YAML file named by ARITH_PROFILES, a fixed seed from
ARITH_SEED, each read from the environment or a .env file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := proptest.Loader{}
			if len(args) == 1 {
				name := args[0]
				loader.Getenv = func(key string) string {
					if key == proptest.EnvProfile {
						return name
					}
					return os.Getenv(key)
				}
			}
			return showProfile(newFormatter(rootOpts, cmd), loader)
		},
	}
}

func showProfile(f *OutputFormatter, loader proptest.Loader) error {
	p, err := loader.Load()
	if err != nil {
		if f.Format == "json" {
			if werr := f.Error(CodeProfile, err.Error(), nil); werr != nil {
				return werr
			}
		}
		return WrapExitError(ExitCommandError, "failed to resolve profile", err)
	}

	return f.Success(ProfileView{
		Name:        p.Name,
		MaxExamples: p.MaxExamples,
		DeadlineMS:  p.DeadlineMS,
		Verbosity:   string(p.Verbosity),
		Seed:        p.Seed,
	})
}
