package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCacheHelper_SetGet(t *testing.T) {
	ctx := context.Background()
	helper := NewCacheHelper(newTestClient(t), "student:")

	type payload struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	if err := helper.Set(ctx, "id:1", payload{Name: "Jane", Age: 20}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got payload
	if err := helper.Get(ctx, "id:1", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Jane" || got.Age != 20 {
		t.Errorf("Unexpected payload: %+v", got)
	}

	t.Run("missing key", func(t *testing.T) {
		var dest payload
		if err := helper.Get(ctx, "id:999", &dest); !errors.Is(err, ErrCacheNotFound) {
			t.Errorf("Expected ErrCacheNotFound, got %v", err)
		}
	})
}

func TestCacheHelper_NilClient(t *testing.T) {
	ctx := context.Background()
	helper := NewCacheHelper(nil, "student:")

	// Writes degrade silently without a client
	if err := helper.Set(ctx, "id:1", "x", time.Minute); err != nil {
		t.Errorf("Expected graceful degradation, got %v", err)
	}

	var missing string
	if err := helper.Get(ctx, "id:1", &missing); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Expected ErrCacheNotAvailable, got %v", err)
	}

	// CacheOrExecute must still serve the fetch when no cache is wired
	var out string
	err := helper.CacheOrExecute(ctx, "id:1", &out, time.Minute, func() (interface{}, error) {
		return "from-store", nil
	})
	if err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if out != "from-store" {
		t.Errorf("Expected store value, got %q", out)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	ctx := context.Background()
	helper := NewCacheHelper(newTestClient(t), "student:")

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return "value", nil
	}

	var out string
	for i := 0; i < 3; i++ {
		if err := helper.CacheOrExecute(ctx, "id:1", &out, time.Minute, fetch); err != nil {
			t.Fatalf("CacheOrExecute failed: %v", err)
		}
		if out != "value" {
			t.Errorf("Unexpected value %q", out)
		}
	}

	if calls != 1 {
		t.Errorf("Expected 1 store fetch, got %d", calls)
	}

	t.Run("fetch errors pass through", func(t *testing.T) {
		wantErr := errors.New("store down")
		var dest string
		err := helper.CacheOrExecute(ctx, "id:2", &dest, time.Minute, func() (interface{}, error) {
			return nil, wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Errorf("Expected store error, got %v", err)
		}
	})
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	ctx := context.Background()
	helper := NewCacheHelper(newTestClient(t), "student:")

	for _, key := range []string{"id:1", "id:2", "email:a@example.com"} {
		if err := helper.Set(ctx, key, "x", time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "id:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	for _, key := range []string{"id:1", "id:2"} {
		if exists, _ := helper.Exists(ctx, key); exists {
			t.Errorf("Key %s should have been invalidated", key)
		}
	}
	if exists, _ := helper.Exists(ctx, "email:a@example.com"); !exists {
		t.Error("Unrelated key was invalidated")
	}
}

func TestCacheManager(t *testing.T) {
	ctx := context.Background()
	cm := NewCacheManager(newTestClient(t))

	if err := cm.HealthCheck(ctx); err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}

	if err := cm.Student.Set(ctx, "id:1", "x", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cm.Report.Set(ctx, "department", "y", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Existence checks land under the exists: prefix via cache-aside
	var found bool
	err := cm.Exists.CacheOrExecute(ctx, "student:a@example.com", &found, time.Minute, func() (interface{}, error) {
		return true, nil
	})
	if err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if cached, _ := cm.Exists.Exists(ctx, "student:a@example.com"); !cached {
		t.Fatal("Existence check was not cached")
	}
	if err := cm.Exists.Set(ctx, "user:b@example.com", true, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A write to one student invalidates its entry, its existence check
	// and the report caches
	InvalidateStudentCache(ctx, cm, 1, "a@example.com")

	if exists, _ := cm.Student.Exists(ctx, "id:1"); exists {
		t.Error("Student entry should have been invalidated")
	}
	if exists, _ := cm.Exists.Exists(ctx, "student:a@example.com"); exists {
		t.Error("Existence entry should have been invalidated")
	}
	if exists, _ := cm.Report.Exists(ctx, "department"); exists {
		t.Error("Report cache should have been invalidated")
	}
	if exists, _ := cm.Exists.Exists(ctx, "user:b@example.com"); !exists {
		t.Error("User existence entry should have survived a student write")
	}

	if err := cm.User.Set(ctx, "id:2", "x", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	InvalidateUserCache(ctx, cm, 2, "b@example.com")

	if exists, _ := cm.User.Exists(ctx, "id:2"); exists {
		t.Error("User entry should have been invalidated")
	}
	if exists, _ := cm.Exists.Exists(ctx, "user:b@example.com"); exists {
		t.Error("User existence entry should have been invalidated")
	}
}
