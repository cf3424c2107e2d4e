package ui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

// copyToClipboard pipes text into the platform clipboard command. The core
// only produces strings; this is the one place the UI touches a clipboard.
func copyToClipboard(text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "pbcopy")
	case "linux":
		switch {
		case commandExists("xclip"):
			cmd = exec.CommandContext(ctx, "xclip", "-selection", "clipboard")
		case commandExists("xsel"):
			cmd = exec.CommandContext(ctx, "xsel", "--clipboard", "--input")
		case commandExists("wl-copy"):
			cmd = exec.CommandContext(ctx, "wl-copy")
		default:
			return fmt.Errorf("no clipboard command found (install xclip, xsel, or wl-clipboard)")
		}
	case "windows":
		cmd = exec.CommandContext(ctx, "clip")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	_, _ = stdin.Write([]byte(text))
	_ = stdin.Close()
	return cmd.Wait()
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
