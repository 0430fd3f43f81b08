package modules

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	docstate "github.com/goliatone/go-docstate"
	"github.com/goliatone/go-docstate/pkg/storage"
)

func TestChecklistSchemaAcceptsTopLevelArrays(t *testing.T) {
	schema := ChecklistSchema()

	items, err := schema.Parse([]any{
		map[string]any{"id": "inc", "title": "Incorporate", "completed": true},
		map[string]any{"id": "bank", "title": "Open a bank account", "category": "finance"},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Completed)
	assert.Equal(t, "finance", items[1].Category)

	_, err = schema.Parse(map[string]any{"id": "inc"})
	var fieldErrs docstate.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	_, err = schema.Parse([]any{map[string]any{"title": "no id"}})
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, []string{"[0].id"}, fieldErrs.Fields())
}

func TestChecklistEditCycle(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	binding, err := docstate.Open(ctx, store, KeyChecklist,
		DefaultChecklist(), ChecklistSchema(),
		docstate.WithDebounce[Checklist](20*time.Millisecond))
	require.NoError(t, err)

	assert.Empty(t, binding.Value(), "fresh checklist starts from the default")

	binding.Set(Checklist{
		{ID: "inc", Title: "Incorporate", Category: "legal"},
	})
	binding.Update(func(items Checklist) Checklist {
		return append(items, ChecklistItem{ID: "bank", Title: "Open a bank account", Category: "finance"})
	})
	binding.Update(func(items Checklist) Checklist {
		items[0].Completed = true
		return items
	})

	time.Sleep(100 * time.Millisecond)

	data, _, ok, err := store.Load(ctx, KeyChecklist)
	require.NoError(t, err)
	require.True(t, ok, "the debounced write must have landed")

	var persisted Checklist
	require.NoError(t, json.Unmarshal(data, &persisted))
	require.Len(t, persisted, 2)
	assert.True(t, persisted[0].Completed)
	assert.Equal(t, "bank", persisted[1].ID)

	// Reopening sees the persisted list.
	binding.Close()
	reopened, err := docstate.Open(ctx, store, KeyChecklist, DefaultChecklist(), ChecklistSchema())
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, persisted, reopened.Value())
}

func TestChecklistCorruptRecordFallsBack(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	_, err := store.Save(ctx, KeyChecklist, []byte(`{"oops": "an object, not an array"}`), storage.Meta{})
	require.NoError(t, err)

	binding, err := docstate.Open(ctx, store, KeyChecklist, DefaultChecklist(), ChecklistSchema())
	require.NoError(t, err)
	defer binding.Close()

	assert.Empty(t, binding.Value())
}
