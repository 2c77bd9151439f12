package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const integrationCatalog = `actions:
  - category: Math/Add
    text: Add
    handler: {kind: print, command: "math add"}
  - category: Math/Subtract
    text: Subtract
  - category: Scene/AddChild
    text: Add Child
`

func TestPickerRendersCatalogTree(t *testing.T) {
	bin := buildBinary(t)
	socket, cleanup, logDir := StartTmuxServer(t)
	defer cleanup()
	t.Cleanup(func() {
		AssertNoServerCrash(t, logDir)
	})
	session := "picker"
	pane := session + ":0.0"
	scriptDir := t.TempDir()
	catalogPath := filepath.Join(scriptDir, "actions.yaml")
	if err := os.WriteFile(catalogPath, []byte(integrationCatalog), 0o644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}
	exitFile := filepath.Join(scriptDir, "exit-code")
	scriptPath := filepath.Join(scriptDir, "run.sh")
	script := "#!/bin/sh\n" +
		"\"$PICKER_BIN\" --socket \"$PICKER_SOCKET\" --catalog \"$PICKER_CATALOG\" --db \"$PICKER_DB\" --width 80 --height 24 > /dev/null 2>&1\n" +
		"printf '%s' $? > \"$PICKER_EXIT\"\n" +
		"sleep 300\n"
	if err := os.WriteFile(scriptPath, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write launcher script: %v", err)
	}
	cmd := tmuxCommand(socket, "new-session", "-d", "-x", "80", "-y", "24", "-s", session, scriptPath)
	cmd.Env = append(cmd.Env,
		"PICKER_BIN="+bin,
		"PICKER_SOCKET="+socket,
		"PICKER_CATALOG="+catalogPath,
		"PICKER_DB="+filepath.Join(scriptDir, "settings.db"),
		"PICKER_EXIT="+exitFile,
	)
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to launch binary: %v", err)
	}
	if err := tmuxCommand(socket, "has-session", "-t", session).Run(); err != nil {
		t.Skipf("skipping: unable to create tmux session: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	output := waitForText(t, ctx, socket, pane, exitFile, "Subtract")
	for _, want := range []string{"Math", "Scene", "Add Child"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in capture:\n%s", want, output)
		}
	}

	SendKeys(t, socket, pane, "sub")
	output = waitForText(t, ctx, socket, pane, exitFile, "sub")
	if strings.Contains(output, "Add Child") {
		t.Fatalf("expected filtered tree to drop Scene, got:\n%s", output)
	}
	SendKeys(t, socket, pane, "Escape")
	_ = tmuxCommand(socket, "kill-session", "-t", session).Run()
}
