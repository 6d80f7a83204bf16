// gradmend-hook is the build-pipeline gate: it runs the patcher once and
// exits non-zero on failure so a surrounding build stops instead of
// proceeding on a half-configured template.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"gradmend/internal/adapters/filesystem"
	"gradmend/internal/adapters/sqlite"
	"gradmend/internal/application"
	"gradmend/internal/application/commands"
	"gradmend/internal/config"
	"gradmend/internal/ports"
)

func main() {
	templateFlag := flag.String("template", config.TemplatePath(), "path to the build template")
	toolchainFlag := flag.String("toolchain", config.Toolchain(), "toolchain generation: modern or legacy")
	skipFlag := flag.Bool("skip", false, "report success without touching the template")
	flag.Parse()

	// The go/no-go decision belongs to the pipeline, not the patcher.
	if *skipFlag {
		fmt.Println("gradmend: skipped")
		return
	}

	versions, err := application.VersionSetByName(*toolchainFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	store := filesystem.NewStore()
	backups := filesystem.NewBackupStore(config.BackupKeep())

	// History is advisory; run without it rather than block a build.
	var history ports.PatchHistory
	if h := sqlite.NewHistory(); h.Open(*templateFlag) == nil {
		defer h.Close()
		history = h
	} else {
		fmt.Fprintln(os.Stderr, "gradmend: history unavailable")
	}

	cmd := commands.NewPatchCommand(store, backups, history, *templateFlag, versions)

	result, err := cmd.Execute(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if application.KindOf(err).Recoverable() {
			os.Exit(2)
		}
		os.Exit(1)
	}

	fmt.Println(result.Message)
}
