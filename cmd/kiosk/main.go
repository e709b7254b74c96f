package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/presensia/attendance-portal-go/internal/config"
	"github.com/presensia/attendance-portal-go/internal/pkg/camera"
	"github.com/presensia/attendance-portal-go/internal/pkg/geoloc"
	"github.com/presensia/attendance-portal-go/internal/pkg/portalapi"
	"github.com/presensia/attendance-portal-go/internal/service/submission"
)

// The kiosk is the capture side of the portal: it drives the camera and the
// position source, then hands a sealed image+coordinates payload to the
// attendance service. Commands come from the terminal the way a touch UI
// would send them.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	device := camera.NewSnapshotDevice(cfg.Kiosk.CameraSnapshotURL, 5*time.Second)
	session := camera.NewSession(device)
	defer session.Stop()

	var source geoloc.Source
	switch cfg.Kiosk.PositionSource {
	case "static":
		source = geoloc.StaticSource{
			Latitude:  cfg.Kiosk.StaticLat,
			Longitude: cfg.Kiosk.StaticLon,
		}
	case "gpsd":
		source = geoloc.NewGpsdSource(cfg.Kiosk.PositionURL)
	default:
		log.Fatal("Unsupported KIOSK_POSITION_SOURCE: ", cfg.Kiosk.PositionSource)
	}

	acquirer := geoloc.NewAcquirer(source, geoloc.DefaultOptions())

	client := portalapi.NewClient(cfg.Kiosk.PortalURL, cfg.Kiosk.AccessToken, 30*time.Second)
	coordinator := submission.NewCoordinator(client)
	defer coordinator.Invalidate()

	fmt.Println("Attendance kiosk ready. Commands: capture, locate, submit, status, quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		ctx := context.Background()

		switch strings.TrimSpace(scanner.Text()) {
		case "capture":
			if err := session.Start(ctx); err != nil {
				fmt.Println("Camera error:", err)
				continue
			}
			if _, err := session.Capture(ctx); err != nil {
				fmt.Println("Capture failed:", err)
				continue
			}
			fmt.Println("Image captured.")

		case "locate":
			fix, err := acquirer.Acquire(ctx)
			if err != nil {
				fmt.Println("Location error:", err)
				continue
			}
			fmt.Printf("Position: %.5f, %.5f (acquired %s)\n",
				fix.Latitude, fix.Longitude, fix.AcquiredAt.Format("15:04:05"))

		case "submit":
			// Refresh the fix first; a recent one is served from cache.
			if _, err := acquirer.Acquire(ctx); err != nil {
				fmt.Println("Location error:", err)
				continue
			}

			result, err := coordinator.Submit(ctx, session, acquirer.LastFix())
			if err != nil {
				fmt.Println("Submission failed:", err)
				continue
			}

			fmt.Println(result.Message)
			if result.WorkHours != nil {
				fmt.Printf("Work hours: %.2f\n", *result.WorkHours)
			}
			if result.Warning != "" {
				fmt.Println("Warning:", result.Warning)
			}

		case "status":
			fmt.Println("Camera:", session.State())
			if fix := acquirer.LastFix(); fix != nil {
				fmt.Printf("Last fix: %.5f, %.5f\n", fix.Latitude, fix.Longitude)
			} else {
				fmt.Println("Last fix: none")
			}
			if err := acquirer.LastError(); err != nil {
				fmt.Println("Last location error:", err)
			}

		case "quit":
			return

		case "":
			// Ignore blank input.

		default:
			fmt.Println("Unknown command. Commands: capture, locate, submit, status, quit")
		}
	}
}
