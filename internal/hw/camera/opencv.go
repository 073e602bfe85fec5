package camera

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/kpfzipoh/camsnap/internal/debug"
)

// OpenCV is a Backend over gocv/OpenCV VideoCapture. It is the default
// backend and behaves like the classic cv2.VideoCapture(index) flow.
type OpenCV struct{}

// NewOpenCV creates the OpenCV capture backend.
func NewOpenCV() *OpenCV {
	return &OpenCV{}
}

// Open acquires the camera at the given index.
// OpenCV does not distinguish "no device" from "open failed" at this
// level, so every open failure is reported as absence.
func (b *OpenCV) Open(index int) (Device, error) {
	vc, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, fmt.Errorf("camera %d: %w", index, ErrNotFound)
	}
	if !vc.IsOpened() {
		_ = vc.Close()
		return nil, fmt.Errorf("camera %d: %w", index, ErrNotFound)
	}
	debug.Trace("opencv: opened camera %d", index)
	return &openCVDevice{index: index, cap: vc}, nil
}

type openCVDevice struct {
	index int
	cap   *gocv.VideoCapture
}

func (d *openCVDevice) ReadFrame() (image.Image, error) {
	mat := gocv.NewMat()
	defer mat.Close()

	if ok := d.cap.Read(&mat); !ok || mat.Empty() {
		return nil, fmt.Errorf("camera %d: no frame received", d.index)
	}
	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("camera %d: convert frame: %w", d.index, err)
	}
	debug.Trace("opencv: read %dx%d frame from camera %d", mat.Cols(), mat.Rows(), d.index)
	return img, nil
}

func (d *openCVDevice) Close() error {
	debug.Trace("opencv: closing camera %d", d.index)
	return d.cap.Close()
}
