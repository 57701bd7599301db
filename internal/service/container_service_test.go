package service

import (
	"testing"
	"time"

	"cargoflow/internal/model"
)

func TestApplyStatusTimestamps(t *testing.T) {
	t.Run("in transit stamps loaded_at once", func(t *testing.T) {
		container := &model.CargoContainer{}
		applyStatusTimestamps(container, model.ContainerInTransit)
		if container.LoadedAt == nil {
			t.Fatal("LoadedAt should be set on IN_TRANSIT")
		}

		first := *container.LoadedAt
		applyStatusTimestamps(container, model.ContainerInTransit)
		if !container.LoadedAt.Equal(first) {
			t.Error("LoadedAt should not change on repeated transition")
		}
	})

	t.Run("arrived stamps arrived_at", func(t *testing.T) {
		container := &model.CargoContainer{}
		applyStatusTimestamps(container, model.ContainerArrived)
		if container.ArrivedAt == nil {
			t.Fatal("ArrivedAt should be set on ARRIVED")
		}
		if container.LoadedAt != nil {
			t.Error("LoadedAt should stay nil when skipping straight to ARRIVED")
		}
	})

	t.Run("delivered stamps nothing", func(t *testing.T) {
		loaded := time.Now().Add(-48 * time.Hour)
		container := &model.CargoContainer{LoadedAt: &loaded}
		applyStatusTimestamps(container, model.ContainerDelivered)
		if container.ArrivedAt != nil {
			t.Error("DELIVERED should not backfill ArrivedAt")
		}
		if !container.LoadedAt.Equal(loaded) {
			t.Error("LoadedAt should be untouched")
		}
	})
}
