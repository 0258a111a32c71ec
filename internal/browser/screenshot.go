package browser

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ScreenshotDebugger saves full-page captures when a render goes wrong
type ScreenshotDebugger struct {
	outputDir string
}

func NewScreenshotDebugger(dir string) *ScreenshotDebugger {
	if dir == "" {
		return nil
	}
	return &ScreenshotDebugger{outputDir: dir}
}

// CaptureAndLog calls shoot with a timestamped file path under the output
// dir. A nil debugger does nothing.
func (s *ScreenshotDebugger) CaptureAndLog(name, message string, shoot func(path string) error) error {
	if s == nil {
		return nil
	}
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return err
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	path := filepath.Join(s.outputDir, fmt.Sprintf("%s_%s.png", name, timestamp))
	log.Printf("📸 %s", message)

	if err := shoot(path); err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return err
	}

	log.Printf("   Screenshot saved: %s", path)
	return nil
}
