package systems

import (
	"reflect"
	"testing"

	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/ecs"
)

func TestLifetimeUpdate(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: 10.0})

	// 多次小步更新
	system.Update(3.0)
	system.Update(3.0)
	system.Update(3.0)

	lifetimeComp, _ := em.GetComponent(id, reflect.TypeOf(&components.LifetimeComponent{}))
	lifetime := lifetimeComp.(*components.LifetimeComponent)

	if lifetime.CurrentLifetime != 9.0 {
		t.Errorf("Expected CurrentLifetime=9.0, got %f", lifetime.CurrentLifetime)
	}
	if lifetime.IsExpired {
		t.Error("Entity should not be expired yet")
	}
}

func TestLifetimeExpirationCallsOnExpireOnce(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	expired := 0
	id := em.CreateEntity()
	em.AddComponent(id, &components.LifetimeComponent{
		MaxLifetime: 0.5,
		OnExpire:    func() { expired++ },
	})

	system.Update(0.5)
	system.Update(0.5)

	if expired != 1 {
		t.Errorf("OnExpire called %d times, want 1", expired)
	}
	if em.Exists(id) {
		t.Error("expired entity should be marked for removal")
	}

	em.RemoveMarkedEntities()
	if em.HasComponent(id, reflect.TypeOf(&components.LifetimeComponent{})) {
		t.Error("Expired entity should be removed")
	}
}

func TestMultipleEntitiesWithDifferentLifetimes(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	// 闪光 0.5 秒，焦痕 13 秒
	flash := em.CreateEntity()
	em.AddComponent(flash, &components.LifetimeComponent{MaxLifetime: 0.5})
	scorch := em.CreateEntity()
	em.AddComponent(scorch, &components.LifetimeComponent{MaxLifetime: 13.0})

	system.Update(7.0)
	em.RemoveMarkedEntities()

	if em.Exists(flash) {
		t.Error("flash should be removed (expired)")
	}
	if !em.Exists(scorch) {
		t.Error("scorch should still exist")
	}
}
