package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/seriesgenius/seriesgenius/color"
	"github.com/seriesgenius/seriesgenius/constant"
	"github.com/seriesgenius/seriesgenius/icon"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/seriesgenius/seriesgenius/style"
	"github.com/spf13/viper"
)

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// CheckDependencies exits when the configured player binary is not in PATH.
func CheckDependencies() {
	if name := missingDependency(); name != "" {
		printMissingDependencyError(name)
		os.Exit(1)
	}
}

func missingDependency() string {
	player := strings.ToLower(viper.GetString(key.Player))
	if player == "" {
		return ""
	}

	if _, err := lookPath(player); err != nil {
		return player
	}

	if app := viper.GetString(key.PlayerEmbedApp); app != "" {
		if _, err := lookPath(app); err != nil {
			return app
		}
	}

	return ""
}

func installHint(dep string) string {
	switch runtime.GOOS {
	case constant.Darwin:
		return "brew install " + dep
	case constant.Linux:
		return "sudo apt install " + dep
	case constant.Windows:
		return "scoop install " + dep
	case constant.Android:
		return "pkg install " + dep
	default:
		return ""
	}
}

func printMissingDependencyError(dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if hint := installHint(dep); hint != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(hint))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
