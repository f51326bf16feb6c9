package errsystem

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/agentuity/go-common/tui"
	"github.com/charmbracelet/lipgloss"
)

// Version is set by main at build time so crash dumps carry a real version
// instead of "dev".
var Version string = "dev"

const baseDocURL = "https://pathfilter.dev/errors/%s"

type crashReport struct {
	ID         string         `json:"id"`
	Timestamp  string         `json:"timestamp"`
	Error      string         `json:"error"`
	ErrorType  errorType      `json:"error_type"`
	Username   string         `json:"username"`
	Message    string         `json:"message,omitempty"`
	OSName     string         `json:"os_name"`
	OSArch     string         `json:"os_arch"`
	Version    string         `json:"version"`
	Attributes map[string]any `json:"attributes,omitempty"`
	StackTrace string         `json:"stack_trace,omitempty"`
}

// writeCrashReportFile dumps the error's full detail to a local JSON file so
// it can be attached to a bug report. There is no backend to upload it to.
func (e *errSystem) writeCrashReportFile(stackTrace string) string {
	tmp, err := os.Create(fmt.Sprintf(".pathfilter-crash-%d.json", time.Now().Unix()))
	if err != nil {
		return ""
	}
	defer tmp.Close()
	var report crashReport
	report.ID = e.id
	report.Timestamp = time.Now().Format(time.RFC3339)
	if u, err := user.Current(); err == nil {
		report.Username = u.Username
	}
	report.OSName = runtime.GOOS
	report.OSArch = runtime.GOARCH
	report.Message = e.message
	if e.err != nil {
		report.Error = e.err.Error()
	}
	report.ErrorType = e.code
	report.Attributes = e.attributes
	report.Version = Version
	report.StackTrace = stackTrace
	enc := json.NewEncoder(tmp)
	enc.SetIndent(" ", " ")
	enc.Encode(report)
	return tmp.Name()
}

// ShowErrorAndExit renders the error as a banner (or, outside a TTY, as
// plain lines) and terminates the process with a non-zero exit code.
func (e *errSystem) ShowErrorAndExit() {
	stackTrace := string(debug.Stack())
	var body strings.Builder
	if e.message != "" {
		body.WriteString(e.message + "\n\n")
	} else {
		body.WriteString(e.code.Message + "\n\n")
	}

	var detail []string
	if e.err != nil {
		errmsg := e.err.Error()
		if errmsg != "" {
			errmsg = strings.ReplaceAll(errmsg, "\n", ". ")
			color := lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
			style := tui.BannerBodyStyle().Width(65).AlignHorizontal(lipgloss.Left).Foreground(color)
			detail = append(detail, tui.Bold(tui.PadRight("Error:", 10, " "))+style.Render(errmsg+"\n"))
		}
	}
	detail = append(detail, tui.Bold(tui.PadRight("Code:", 10, " "))+e.code.Code)
	detail = append(detail, tui.Bold(tui.PadRight("ID:", 10, " "))+e.id)
	detail = append(detail, tui.Bold(tui.PadRight("Help:", 10, " "))+tui.Link(baseDocURL, e.code.Code))

	crashReportFile := e.writeCrashReportFile(stackTrace)
	for _, d := range detail {
		body.WriteString(tui.Muted(d) + "\n")
	}

	if !tui.HasTTY {
		fmt.Println(body.String())
		for k, v := range e.attributes {
			fmt.Printf("%s: %v\n", k, v)
		}
		if crashReportFile != "" {
			fmt.Printf("crash report written to %s\n", crashReportFile)
		}
		os.Exit(1)
	}

	tui.ShowBanner(tui.Warning("☹ Error Detected"), body.String(), false)
	if crashReportFile != "" {
		fmt.Printf(" crash report written to %s\n", crashReportFile)
	}
	os.Exit(1)
}
