package cache

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRedisNil(t *testing.T) {
	var r *Redis
	ctx := context.Background()

	var dest map[string]int
	ok, err := r.GetObject(ctx, "x", &dest)
	if ok || err != nil {
		t.Errorf("GetObject em nil = %v, %v", ok, err)
	}
	if err := r.SetObject(ctx, "x", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Errorf("SetObject em nil: %v", err)
	}
	if err := r.Remove(ctx, "x"); err != nil {
		t.Errorf("Remove em nil: %v", err)
	}
	release, err := r.Lock(ctx, "x", time.Second)
	if err != nil {
		t.Errorf("Lock em nil: %v", err)
	}
	release()
}

func TestConectarSemEndereco(t *testing.T) {
	r, err := Conectar(context.Background(), "", "", 0)
	if r != nil || err != nil {
		t.Errorf("Conectar(\"\") = %v, %v", r, err)
	}
}

func TestRedisIntegracao(t *testing.T) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDRESS"))
	if addr == "" {
		t.Skip("set REDIS_ADDRESS to run redis integration tests")
	}
	ctx := context.Background()
	r, err := Conectar(ctx, addr, "", 0)
	if err != nil {
		t.Fatalf("Conectar: %v", err)
	}
	t.Cleanup(func() { _ = r.Remove(ctx, "test:obj") })

	if err := r.SetObject(ctx, "test:obj", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("SetObject: %v", err)
	}
	var got map[string]int
	ok, err := r.GetObject(ctx, "test:obj", &got)
	if err != nil || !ok || got["a"] != 1 {
		t.Fatalf("GetObject = %v, %v, %v", got, ok, err)
	}

	release, err := r.Lock(ctx, "test", time.Second)
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	release()
}
