package ast

import "testing"

type point struct {
	X int32
	Y int32
}

func TestGuestType(t *testing.T) {
	if ty, ok := GuestType[bool](); !ok || !ty.Equal(Bool) {
		t.Errorf("GuestType[bool]() = (%s, %v), want (bool, true)", ty, ok)
	}
	if ty, ok := GuestType[int32](); !ok || !ty.Equal(Int) {
		t.Errorf("GuestType[int32]() = (%s, %v), want (int, true)", ty, ok)
	}
	if ty, ok := GuestType[HostChar](); !ok || !ty.Equal(Char) {
		t.Errorf("GuestType[HostChar]() = (%s, %v), want (char, true)", ty, ok)
	}
	if ty, ok := GuestType[point](); !ok || !ty.Equal(Tuple(Int, Int)) {
		t.Errorf("GuestType[point]() = (%s, %v), want (tuple(int, int), true)", ty, ok)
	}
	if _, ok := GuestType[Value](); ok {
		t.Errorf("GuestType[Value]() should decline to advertise")
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	p := point{X: 3, Y: 4}

	packed, err := Pack(p)
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	if !packed.TypeOf().Equal(Tuple(Int, Int)) {
		t.Fatalf("Pack() produced %s, want tuple(int, int)", packed.TypeOf())
	}

	unpacked, err := Unpack[point](packed)
	if err != nil {
		t.Fatalf("Unpack() error: %v", err)
	}
	if unpacked != p {
		t.Errorf("Unpack() = %+v, want %+v", unpacked, p)
	}
}

func TestUnpackMismatch(t *testing.T) {
	if _, err := Unpack[bool](IntValue{V: 1}); err == nil {
		t.Error("Unpack[bool] of an IntValue should have failed")
	}
}

func TestPackHostChar(t *testing.T) {
	packed, err := Pack(HostChar('z'))
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	cv, ok := packed.(CharValue)
	if !ok || cv.V != 'z' {
		t.Errorf("Pack(HostChar('z')) = %#v, want CharValue{'z'}", packed)
	}
}
