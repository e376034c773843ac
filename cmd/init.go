package cmd

import (
	"fmt"
	"os"

	"github.com/Rana718/synthgen/internal/utils"
	"github.com/Rana718/synthgen/template"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	sqliteFlag     bool
	postgresqlFlag bool
	mysqlFlag      bool
	mongodbFlag    bool
	initForce      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new synthgen project",
	Long:  `Write a sample synthgen.config.json, a Customer/Order schema.yaml and a .env with DATABASE_URL.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbType := template.SQLite
		flagCount := 0

		if sqliteFlag {
			dbType = template.SQLite
			flagCount++
		}
		if postgresqlFlag {
			dbType = template.PostgreSQL
			flagCount++
		}
		if mysqlFlag {
			dbType = template.MySQL
			flagCount++
		}
		if mongodbFlag {
			dbType = template.MongoDB
			flagCount++
		}

		if flagCount > 1 {
			return fmt.Errorf("please specify only one database type (--sqlite, --postgresql, --mysql or --mongodb)")
		}

		return initializeProject(dbType, initForce)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&sqliteFlag, "sqlite", false, "Seed into a SQLite database")
	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Seed into a PostgreSQL database")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Seed into a MySQL database")
	initCmd.Flags().BoolVar(&mongodbFlag, "mongodb", false, "Seed into a MongoDB database")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing files")
}

func initializeProject(dbType template.DatabaseType, force bool) error {
	tmpl := template.NewProjectTemplate(dbType)

	files := []struct {
		path    string
		content string
	}{
		{template.ConfigFile, tmpl.GetConfig()},
		{template.SchemaFile, tmpl.GetSchema()},
		{template.EnvFile, tmpl.GetEnvTemplate()},
	}

	input := &utils.InputUtils{}
	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil && !force {
			if input.GetUserChoice([]string{"skip", "overwrite"}, fmt.Sprintf("%s already exists", f.path), false) == "skip" {
				color.Yellow("⚠️  Skipped %s", f.path)
				continue
			}
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		color.Green("✅ Created %s", f.path)
	}

	fmt.Println()
	color.Cyan("🚀 Next steps:")
	fmt.Println("   synthgen validate")
	fmt.Println("   synthgen generate")
	if dbType != template.SQLite {
		fmt.Println("   # set DATABASE_URL in .env, then")
	}
	fmt.Println("   synthgen seed")
	return nil
}
