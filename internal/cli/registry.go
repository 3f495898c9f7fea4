package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prebunk/prebunk/internal/evidence"
	"github.com/prebunk/prebunk/internal/persona"
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the trusted evidence sources",
	Long:  `Display the built-in registry of trusted health information sources with their authority scores and specialties.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, src := range evidence.DefaultSources() {
			fmt.Printf("%s\n", src.Name)
			fmt.Printf("  Authority:   %.2f\n", src.Authority)
			fmt.Printf("  Type:        %s\n", src.Type)
			fmt.Printf("  URL:         %s\n", src.URLPattern)
			fmt.Printf("  Specialties: %s\n", strings.Join(src.Specialties, ", "))
			fmt.Println()
		}
	},
}

// personasCmd represents the personas command
var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List the audience personas",
	Long:  `Display the built-in audience archetypes used for reaction simulation.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range persona.DefaultPersonas() {
			fmt.Printf("%s\n", p.Name)
			fmt.Printf("  Demographics:    %s\n", p.Demographics)
			fmt.Printf("  Health literacy: %s\n", p.HealthLiteracy)
			fmt.Printf("  Beliefs:         %s\n", p.Beliefs)
			fmt.Printf("  Concerns:        %s\n", p.Concerns)
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(personasCmd)
}
