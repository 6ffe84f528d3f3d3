// capture-test grabs one frame outside the serving stack: open, read
// with retries, report what the driver actually negotiated, save the
// frame, and print crude pixel statistics. Handy when the web UI only
// shows the placeholder and the question is whether the camera works
// at all.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/vladimirvivien/go4vl/device"
	"github.com/vladimirvivien/go4vl/v4l2"

	"camview/pkg/camera"
	"camview/pkg/utils/image"
)

const (
	maxAttempts  = 5
	attemptPause = time.Second
)

var (
	devName  = flag.String("d", "/dev/video0", "device name (path)")
	fourcc   = flag.String("f", "", "fourcc code to request (e.g., MJPG, YUYV)")
	width    = flag.Uint("width", 0, "desired frame width")
	height   = flag.Uint("height", 0, "desired frame height")
	out      = flag.String("o", "capture.jpg", "where to save the captured frame")
	controls = flag.Bool("controls", false, "dump the supported controls as JSON and exit")
)

func main() {
	flag.Parse()

	if *controls {
		dumpControls(*devName)
		return
	}

	reportFrameSizes(*devName)

	for _, fcc := range formatPlan(*fourcc) {
		if tryCapture(*devName, fcc, uint32(*width), uint32(*height), *out) {
			return
		}
	}
	log.Fatal("all capture attempts failed")
}

// formatPlan orders the formats to try. MJPG and YUYV stand in for each
// other when one fails; any other requested format is tried alone.
func formatPlan(requested string) []string {
	switch requested {
	case "":
		return []string{"", "MJPG", "YUYV"}
	case "MJPG":
		return []string{"MJPG", "YUYV"}
	case "YUYV":
		return []string{"YUYV", "MJPG"}
	default:
		return []string{requested}
	}
}

func tryCapture(devName, fourcc string, width, height uint32, out string) bool {
	if fourcc == "" {
		log.Printf("trying %s with the driver's current format", devName)
	} else {
		log.Printf("trying %s with format %s", devName, fourcc)
	}

	cam := camera.New()
	if err := cam.Open(camera.Config{Device: devName, FourCC: fourcc, Width: width, Height: height}); err != nil {
		log.Printf("open failed: %s", err)
		return false
	}
	defer cam.Close()

	st := cam.Status()
	log.Printf("negotiated: %dx%d %s, %d fps", st.Width, st.Height, st.Format, st.FPS)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		f, err := cam.ReadFrame()
		if err != nil {
			log.Printf("attempt %d/%d: %s", attempt, maxAttempts, err)
			if attempt < maxAttempts {
				time.Sleep(attemptPause)
			}
			continue
		}

		log.Printf("captured a %dx%d frame on attempt %d", f.Width, f.Height, attempt)
		min, max := image.PixelRange(f.Image)
		log.Printf("pixel range: min=%d max=%d", min, max)
		if min == max {
			log.Print("flat image, the sensor may be covered or stuck")
		}
		if err := image.EncodeJPEGFile(f.Image, out, 95); err != nil {
			log.Printf("save frame: %s", err)
			return false
		}
		log.Printf("saved frame to %s", out)

		return true
	}
	log.Printf("no frame after %d attempts", maxAttempts)

	return false
}

func reportFrameSizes(devName string) {
	dev, err := device.Open(devName)
	if err != nil {
		log.Printf("failed to open device: %s", err)
		return
	}
	defer dev.Close()

	sizes, err := v4l2.GetAllFormatFrameSizes(dev.Fd())
	if err != nil {
		log.Printf("query frame sizes: %s", err)
		return
	}
	log.Print("supported formats:")
	for _, size := range sizes {
		log.Printf("  %s: up to %dx%d", image.FourCCString(size.PixelFormat), size.Size.MaxWidth, size.Size.MaxHeight)
	}
}

func dumpControls(devName string) {
	cam := camera.New()
	if err := cam.Open(camera.Config{Device: devName}); err != nil {
		log.Fatalf("failed to open device: %s", err)
	}
	defer cam.Close()

	configs, err := cam.Controls()
	if err != nil {
		log.Fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "    ")
	if err := enc.Encode(configs); err != nil {
		panic(err)
	}
}
