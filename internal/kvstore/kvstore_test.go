package kvstore

import (
	"context"
	"testing"
)

func newTestKV(t *testing.T, name string) KV {
	t.Helper()
	switch name {
	case "sqlite":
		s, err := NewSQLiteKV(":memory:")
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { s.Close() })
		return s
	case "memory":
		m := NewMemoryKV()
		t.Cleanup(func() { m.Close() })
		return m
	}
	t.Fatalf("unknown kv %q", name)
	return nil
}

func TestKV_SetGet(t *testing.T) {
	for _, impl := range []string{"sqlite", "memory"} {
		t.Run(impl, func(t *testing.T) {
			kv := newTestKV(t, impl)
			ctx := context.Background()

			if err := kv.Set(ctx, "greeting", []byte("hello world")); err != nil {
				t.Fatal(err)
			}

			got, err := kv.Get(ctx, "greeting")
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != "hello world" {
				t.Errorf("Get = %q, want %q", got, "hello world")
			}
		})
	}
}

func TestKV_Get_Absent(t *testing.T) {
	for _, impl := range []string{"sqlite", "memory"} {
		t.Run(impl, func(t *testing.T) {
			kv := newTestKV(t, impl)

			got, err := kv.Get(context.Background(), "missing")
			if err != nil {
				t.Fatal(err)
			}
			if got != nil {
				t.Errorf("Get = %v, want nil for absent key", got)
			}
		})
	}
}

func TestKV_Set_Upsert(t *testing.T) {
	for _, impl := range []string{"sqlite", "memory"} {
		t.Run(impl, func(t *testing.T) {
			kv := newTestKV(t, impl)
			ctx := context.Background()

			kv.Set(ctx, "k1", []byte("v1"))
			kv.Set(ctx, "k1", []byte("v2")) // Update.

			got, _ := kv.Get(ctx, "k1")
			if string(got) != "v2" {
				t.Errorf("Get = %q, want v2", got)
			}
		})
	}
}

func TestKV_Remove(t *testing.T) {
	for _, impl := range []string{"sqlite", "memory"} {
		t.Run(impl, func(t *testing.T) {
			kv := newTestKV(t, impl)
			ctx := context.Background()

			kv.Set(ctx, "a", []byte("1"))
			kv.Set(ctx, "b", []byte("2"))
			kv.Set(ctx, "c", []byte("3"))

			if err := kv.Remove(ctx, "a", "b", "nope"); err != nil {
				t.Fatal(err)
			}

			if got, _ := kv.Get(ctx, "a"); got != nil {
				t.Error("a survived Remove")
			}
			if got, _ := kv.Get(ctx, "b"); got != nil {
				t.Error("b survived Remove")
			}
			if got, _ := kv.Get(ctx, "c"); got == nil {
				t.Error("c removed unexpectedly")
			}
		})
	}
}

func TestKV_Remove_NoKeys(t *testing.T) {
	kv := newTestKV(t, "sqlite")
	if err := kv.Remove(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestMemoryKV_Closed(t *testing.T) {
	m := NewMemoryKV()
	m.Close()

	if _, err := m.Get(context.Background(), "k"); err != ErrClosed {
		t.Errorf("Get after Close: err = %v, want ErrClosed", err)
	}
	if err := m.Set(context.Background(), "k", nil); err != ErrClosed {
		t.Errorf("Set after Close: err = %v, want ErrClosed", err)
	}
}

func TestMemoryKV_CopyOnGet(t *testing.T) {
	m := NewMemoryKV()
	ctx := context.Background()

	m.Set(ctx, "k", []byte("abc"))
	got, _ := m.Get(ctx, "k")
	got[0] = 'x'

	again, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through Get result: %q", again)
	}
}
