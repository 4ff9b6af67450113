package script

import (
	"errors"
	"reflect"
	"testing"
)

func TestSets_LookupClosestPreceding(t *testing.T) {
	s := NewSets()
	s.Add(LocalVar{Name: "x", Values: []string{"5"}, ID: 0})
	s.Add(LocalVar{Name: "x", Values: []string{"10"}, ID: 4})

	tests := []struct {
		at   int
		want string
		ok   bool
	}{
		{0, "5", true},
		{3, "5", true},
		{4, "10", true},
		{9, "10", true},
		{-1, "", false},
	}
	for _, tt := range tests {
		v, ok := s.Lookup("x", tt.at)
		if ok != tt.ok || (ok && v.Values[0] != tt.want) {
			t.Errorf("Lookup(x, %d) = %v, %v", tt.at, v.Values, ok)
		}
	}
}

func TestSets_ResolveChains(t *testing.T) {
	s := NewSets()
	s.Add(LocalVar{Name: "base", Values: []string{"0x100"}, ID: 0})
	s.Add(LocalVar{Name: "ptr", Values: []string{"base", "+4"}, ID: 1})
	s.Add(LocalVar{Name: "off", Values: []string{"8"}, ID: 2})
	s.Add(LocalVar{Name: "addr", Values: []string{"ptr", "+off"}, ID: 3})

	got, err := s.Resolve("addr", 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"0x100", "+4", "+8"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Resolve = %q, want %q", got, want)
	}
}

func TestSets_ResolveUsesLookupPosition(t *testing.T) {
	s := NewSets()
	s.Add(LocalVar{Name: "base", Values: []string{"0x100"}, ID: 0})
	s.Add(LocalVar{Name: "ptr", Values: []string{"base"}, ID: 1})
	s.Add(LocalVar{Name: "base", Values: []string{"0x200"}, ID: 2})

	got, _ := s.Resolve("ptr", 5)
	if !reflect.DeepEqual(got, []string{"0x200"}) {
		t.Fatalf("Resolve = %q", got)
	}
}

func TestSets_CycleIsAnError(t *testing.T) {
	s := NewSets()
	s.Add(LocalVar{Name: "a", Values: []string{"b"}, ID: 0})
	s.Add(LocalVar{Name: "b", Values: []string{"a"}, ID: 1})

	cmd := NewCommand("Write32 a 1")
	cmd.ID = 2
	err := s.ApplyToCommand(cmd)
	var se *Error
	if !errors.As(err, &se) || se.Kind != SetStackOverflow {
		t.Fatalf("err = %v, want SET_STACK_OVERFLOW", err)
	}
}

func TestSets_ApplyToCommand(t *testing.T) {
	s := NewSets()
	s.Add(LocalVar{Name: "x", Values: []string{"5"}, ID: 0})
	s.Add(LocalVar{Name: "p", Values: []string{"0x100", "+ 4"}, ID: 1})
	s.Add(LocalVar{Name: "late", Values: []string{"1"}, ID: 9})

	cmd := NewCommand("Write32 p + x late")
	cmd.ID = 3
	if err := s.ApplyToCommand(cmd); err != nil {
		t.Fatal(err)
	}
	want := []string{"0x100", "+4", "+5", "late"}
	if !reflect.DeepEqual(cmd.Data, want) {
		t.Fatalf("Data = %q, want %q", cmd.Data, want)
	}
}

func TestSets_ApplyToCommand_CommaMarker(t *testing.T) {
	s := NewSets()
	s.Add(LocalVar{Name: "reg", Values: []string{"$t1"}, ID: 0})
	cmd := NewCommand("add $t0, reg,$t2")
	cmd.ID = 1
	if err := s.ApplyToCommand(cmd); err != nil {
		t.Fatal(err)
	}
	want := []string{"$t0", ",$t1", ",$t2"}
	if !reflect.DeepEqual(cmd.Data, want) {
		t.Fatalf("Data = %q, want %q", cmd.Data, want)
	}
}
