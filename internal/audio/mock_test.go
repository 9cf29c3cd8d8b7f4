package audio

import (
	"errors"
	"testing"
	"time"
)

// TestMockDeviceRecordsStreams verifies streams and writes are recorded.
func TestMockDeviceRecordsStreams(t *testing.T) {
	device := NewMockDevice()

	stream, err := device.Open(22050)
	if err != nil {
		t.Fatal(err)
	}
	if device.OpenCount() != 1 {
		t.Errorf("OpenCount() = %d, want 1", device.OpenCount())
	}

	if err := stream.Write([]float32{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := stream.Write([]float32{4}); err != nil {
		t.Fatal(err)
	}

	ms := device.LastStream()
	if ms.SampleRate() != 22050 {
		t.Errorf("SampleRate() = %d, want 22050", ms.SampleRate())
	}
	if ms.Writes() != 2 {
		t.Errorf("Writes() = %d, want 2", ms.Writes())
	}
	if got := ms.Samples(); len(got) != 4 || got[3] != 4 {
		t.Errorf("Samples() = %v, want [1 2 3 4]", got)
	}
}

// TestMockDeviceOpenError verifies injected open failures.
func TestMockDeviceOpenError(t *testing.T) {
	device := NewMockDevice()
	wantErr := errors.New("no such device")
	device.SetOpenError(wantErr)

	if _, err := device.Open(22050); !errors.Is(err, wantErr) {
		t.Errorf("Open() = %v, want %v", err, wantErr)
	}
	if device.OpenCount() != 1 {
		t.Errorf("OpenCount() = %d, want 1", device.OpenCount())
	}

	device.SetOpenError(nil)
	if _, err := device.Open(22050); err != nil {
		t.Errorf("Open() after clearing error = %v", err)
	}
}

// TestMockStreamClosed verifies writes after Close fail.
func TestMockStreamClosed(t *testing.T) {
	device := NewMockDevice()
	stream, err := device.Open(22050)
	if err != nil {
		t.Fatal(err)
	}

	if err := stream.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := stream.Close(); err != nil {
		t.Fatal(err)
	}

	ms := device.LastStream()
	if !ms.Stopped() || !ms.Closed() {
		t.Errorf("Stopped() = %v, Closed() = %v, want true, true", ms.Stopped(), ms.Closed())
	}
	if err := stream.Write([]float32{1}); !errors.Is(err, ErrDeviceClosed) {
		t.Errorf("Write after Close = %v, want ErrDeviceClosed", err)
	}
}

// TestMockDeviceHoldWrites verifies the write gate blocks until released.
func TestMockDeviceHoldWrites(t *testing.T) {
	device := NewMockDevice()
	device.HoldWrites()

	stream, err := device.Open(22050)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		done <- stream.Write([]float32{1, 2})
	}()

	select {
	case <-done:
		t.Fatal("write completed while held")
	case <-time.After(10 * time.Millisecond):
	}

	device.ReleaseWrites()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("held write failed after release: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("write never completed after release")
	}
}
