package navigation

import (
	"context"
	"errors"
	"testing"
)

func TestRegistryValidate(t *testing.T) {
	reg := NewRegistry()
	for _, s := range Screens() {
		if s == ScreenRating {
			continue
		}
		reg.Register(s, RendererFunc(func(ctx context.Context, f Frame) (any, error) { return nil, nil }))
	}
	if err := reg.Validate(); err == nil {
		t.Fatal("expected missing rating renderer")
	}
	reg.Register(ScreenRating, RendererFunc(func(ctx context.Context, f Frame) (any, error) { return nil, nil }))
	if err := reg.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestRegistryRender(t *testing.T) {
	reg := NewRegistry().
		Register(ScreenHome, RendererFunc(func(ctx context.Context, f Frame) (any, error) {
			return "home:" + f.SessionID, nil
		})).
		Register(ScreenExplore, RendererFunc(func(ctx context.Context, f Frame) (any, error) {
			return nil, errors.New("boom")
		}))

	r := signedInRouter(t)
	view, err := reg.Render(context.Background(), r.Frame("abc"))
	if err != nil || view != "home:abc" {
		t.Fatalf("view=%v err=%v", view, err)
	}

	r.Navigate(ScreenExplore, nil)
	if _, err := reg.Render(context.Background(), r.Frame("abc")); err == nil {
		t.Fatal("expected render error")
	}
}

func TestRegistryRenderUnregisteredPanics(t *testing.T) {
	reg := NewRegistry()
	r := signedInRouter(t)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	reg.Render(context.Background(), r.Frame("abc"))
}
