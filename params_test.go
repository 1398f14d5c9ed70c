package iidc

import (
	"errors"
	"testing"
)

func openFake(t *testing.T, fc *fakeCamera) *Camera {
	t.Helper()
	ctx, _ := newFakeContext(map[GUID]*fakeCamera{0x42: fc})
	cam, err := ctx.OpenCamera(0x42)
	if err != nil {
		t.Fatalf("OpenCamera: %v", err)
	}
	return cam
}

func TestApplyParametersLeavesCameraStopped(t *testing.T) {
	sequences := [][]Parameter{
		{},
		{BusSpeed(Speed400)},
		{FrameRate(Rate30)},
		{Resolution{Width: 640, Height: 480}},
		{BusSpeed(Speed800), Resolution{Left: 16, Top: 16, Width: 320, Height: 240}, FrameRate(Rate15)},
	}
	for _, params := range sequences {
		for _, wasTransmitting := range []bool{false, true} {
			fc := newFakeCamera()
			cam := openFake(t, fc)
			if wasTransmitting {
				if err := cam.StartAcquisition(); err != nil {
					t.Fatalf("StartAcquisition: %v", err)
				}
			}

			if err := cam.ApplyParameters(params...); err != nil {
				t.Fatalf("ApplyParameters(%v): %v", params, err)
			}
			if cam.IsTransmitting() {
				t.Errorf("camera transmitting after ApplyParameters(%v) (was transmitting: %v)", params, wasTransmitting)
			}
			if fc.transmission {
				t.Errorf("driver transmission still on after ApplyParameters(%v)", params)
			}
			if !cam.IsOpen() {
				t.Errorf("camera closed after successful ApplyParameters(%v)", params)
			}
		}
	}
}

func TestApplyParametersOrder(t *testing.T) {
	fc := newFakeCamera()
	cam := openFake(t, fc)

	err := cam.ApplyParameters(
		BusSpeed(Speed400),
		Resolution{Width: 640, Height: 480},
		FrameRate(Rate30),
	)
	if err != nil {
		t.Fatalf("ApplyParameters: %v", err)
	}

	want := []string{"transmission_off", "capture_stop", "iso_speed", "roi", "framerate"}
	got := fc.opLog()
	if len(got) != len(want) {
		t.Fatalf("driver calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("driver calls = %v, want %v", got, want)
		}
	}
}

func TestApplyParametersInvalid(t *testing.T) {
	cases := []struct {
		name  string
		param Parameter
	}{
		{"nil", nil},
		{"speed out of range", BusSpeed(99)},
		{"rate out of range", FrameRate(7)},
		{"zero size region", Resolution{Width: 0, Height: 480}},
		{"negative offset", Resolution{Left: -1, Width: 640, Height: 480}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fc := newFakeCamera()
			cam := openFake(t, fc)

			err := cam.ApplyParameters(tc.param)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("ApplyParameters error = %v, want ErrInvalidParameter", err)
			}
			if !cam.IsOpen() {
				t.Error("camera released on an invalid parameter")
			}
			// The forced halt runs first, but the bad parameter itself
			// must never reach the driver.
			for _, op := range fc.opLog() {
				if op != "transmission_off" && op != "capture_stop" {
					t.Errorf("driver call %q made for an invalid parameter", op)
				}
			}
		})
	}
}

func TestApplyParametersSpeedRejected(t *testing.T) {
	fc := newFakeCamera()
	fc.speedErr = errors.New("speed not supported")
	cam := openFake(t, fc)

	err := cam.ApplyParameters(BusSpeed(Speed3200))
	if !errors.Is(err, ErrUnsupportedSpeed) {
		t.Fatalf("ApplyParameters error = %v, want ErrUnsupportedSpeed", err)
	}
	if !cam.IsOpen() {
		t.Error("camera released on a rejected bus speed")
	}
}

func TestApplyParametersRegionRejected(t *testing.T) {
	fc := newFakeCamera()
	fc.roiErr = errors.New("region exceeds sensor")
	cam := openFake(t, fc)

	err := cam.ApplyParameters(Resolution{Width: 640, Height: 480})
	if !errors.Is(err, ErrUnsupportedRegion) {
		t.Fatalf("ApplyParameters error = %v, want ErrUnsupportedRegion", err)
	}
	if cam.IsOpen() {
		t.Error("camera still open after a rejected region")
	}
	if !fc.isFreed() {
		t.Error("driver handle not freed after a rejected region")
	}
}

func TestApplyParametersRateRejected(t *testing.T) {
	fc := newFakeCamera()
	fc.rateErr = errors.New("rate not supported in this mode")
	cam := openFake(t, fc)

	err := cam.ApplyParameters(FrameRate(Rate240))
	if !errors.Is(err, ErrUnsupportedFrameRate) {
		t.Fatalf("ApplyParameters error = %v, want ErrUnsupportedFrameRate", err)
	}
	if cam.IsOpen() {
		t.Error("camera still open after a rejected frame rate")
	}
	if !fc.isFreed() {
		t.Error("driver handle not freed after a rejected frame rate")
	}
}

func TestApplyParametersStopsAtFirstFailure(t *testing.T) {
	fc := newFakeCamera()
	fc.speedErr = errors.New("speed not supported")
	cam := openFake(t, fc)

	err := cam.ApplyParameters(BusSpeed(Speed100), FrameRate(Rate30))
	if !errors.Is(err, ErrUnsupportedSpeed) {
		t.Fatalf("ApplyParameters error = %v, want ErrUnsupportedSpeed", err)
	}
	for _, op := range fc.opLog() {
		if op == "framerate" {
			t.Error("frame rate applied after an earlier parameter failed")
		}
	}
}

func TestApplyParametersOnClosedCameraPanics(t *testing.T) {
	fc := newFakeCamera()
	cam := openFake(t, fc)
	if err := cam.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("ApplyParameters on a closed camera did not panic")
		}
	}()
	_ = cam.ApplyParameters(BusSpeed(Speed400))
}
