package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Notifier sends system notifications.
type Notifier struct {
	Enabled bool
}

// Send sends a system notification.
// On macOS, uses osascript to display notifications.
// On other platforms, this is a no-op.
func (n *Notifier) Send(title, message string) error {
	if !n.Enabled {
		return nil
	}

	if runtime.GOOS != "darwin" {
		// Only macOS supported for now
		return nil
	}

	return sendMacOSNotification(title, message)
}

// sendMacOSNotification uses osascript to display a notification.
func sendMacOSNotification(title, message string) error {
	// Escape quotes in title and message
	title = strings.ReplaceAll(title, `"`, `\"`)
	message = strings.ReplaceAll(message, `"`, `\"`)

	script := fmt.Sprintf(`display notification "%s" with title "%s"`, message, title)
	cmd := exec.Command("osascript", "-e", script)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	return nil
}

// FormatCampaignComplete formats a campaign completion notification message.
func FormatCampaignComplete(campaignID string, revisionCount int, fromFallback bool) (title, message string) {
	if fromFallback {
		title = "AutoMark Campaign Complete (degraded)"
		message = fmt.Sprintf("%s: finished after %d round(s) with fallback content", campaignID, revisionCount)
	} else {
		title = "AutoMark Campaign Complete"
		message = fmt.Sprintf("%s: finished after %d round(s)", campaignID, revisionCount)
	}
	return title, message
}

// FormatCampaignFailed formats a campaign failure notification message.
func FormatCampaignFailed(campaignID string, err error) (title, message string) {
	title = "AutoMark Campaign Failed"
	message = fmt.Sprintf("%s: %v", campaignID, err)
	return title, message
}
