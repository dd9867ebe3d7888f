package commands

import (
	"github.com/spf13/cobra"
	"go.opnix.dev/opnix/internal/app"
	"go.opnix.dev/opnix/internal/core/domain"
)

func (c *CLI) newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [packages...]",
		Short: "Convert staged packages to build expressions",
		Long: `Convert converts staged opam packages to Nix build expressions.
Each package is given as name.version and must be staged under the
repository directory as <repo>/<name>.<version>/manifest.yaml.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			packages := make([]domain.PackageID, 0, len(args))
			for _, arg := range args {
				id, err := app.ParsePackageSpec(arg)
				if err != nil {
					return err
				}
				packages = append(packages, id)
			}

			repoRoot, _ := cmd.Flags().GetString("repo")
			outDir, _ := cmd.Flags().GetString("out")
			cacheDir, _ := cmd.Flags().GetString("cache")
			offline, _ := cmd.Flags().GetBool("offline")
			jobs, _ := cmd.Flags().GetInt("jobs")

			return c.app.Run(cmd.Context(), app.RunRequest{
				Packages: packages,
				RepoRoot: repoRoot,
				OutDir:   outDir,
				CacheDir: cacheDir,
				Offline:  offline,
				Jobs:     jobs,
			})
		},
	}
	cmd.Flags().StringP("repo", "r", ".", "Repository directory holding staged packages")
	cmd.Flags().StringP("out", "o", "out", "Output directory for generated expressions")
	cmd.Flags().String("cache", "", "Checksum cache directory (default .opnix/checksums)")
	cmd.Flags().Bool("offline", false, "Never fetch; fail on checksums missing from the cache")
	cmd.Flags().IntP("jobs", "j", 0, "Maximum concurrent conversions (default number of CPUs)")
	return cmd
}
