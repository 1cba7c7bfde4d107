package engine_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-occasions/internal/config"
	"github.com/tartampluch/go-occasions/internal/engine"
)

func TestExport_Feed(t *testing.T) {
	r := newResolver(t, nil)
	exp := &engine.Exporter{Resolver: r}

	data, active, err := exp.Export(context.Background(), tripleOverlap)
	require.NoError(t, err)
	assert.Equal(t, 3, active)

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	assert.Equal(t, config.ICalProdid, cal.Props.Get(config.PropProdid).Value)

	events := cal.Events()
	wantEvents := len(engine.SeasonalEventTable()) + len(engine.AcademicTermTable()) + 1
	require.Len(t, events, wantEvents)

	uids := make(map[string]struct{}, len(events))
	var recurring int
	for _, ev := range events {
		uid := ev.Props.Get(config.PropUID)
		require.NotNil(t, uid)
		uids[uid.Value] = struct{}{}
		assert.NotNil(t, ev.Props.Get(config.PropDTStamp))
		if ev.Props.Get(config.PropRRule) != nil {
			recurring++
		}
	}
	assert.Len(t, uids, wantEvents, "UIDs must be unique")
	assert.Equal(t, 1, recurring, "only the anniversary repeats")

	assert.Contains(t, string(data), "DTSTART;VALUE=DATE:20241001")
	assert.Contains(t, string(data), "DTEND;VALUE=DATE:20241101")
	assert.Contains(t, string(data), "RRULE:FREQ=YEARLY")
	assert.Contains(t, string(data), "DTSTART;VALUE=DATE:20221023")
}

func TestExport_ActiveCount(t *testing.T) {
	exp := &engine.Exporter{Resolver: newResolver(t, nil)}

	_, active, err := exp.Export(context.Background(), quiet)
	require.NoError(t, err)
	assert.Equal(t, 0, active)
}

func TestExport_StableUIDs(t *testing.T) {
	exp := &engine.Exporter{Resolver: newResolver(t, nil)}

	collect := func(data []byte) []string {
		cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
		require.NoError(t, err)
		var out []string
		for _, ev := range cal.Events() {
			out = append(out, ev.Props.Get(config.PropUID).Value)
		}
		return out
	}

	first, _, err := exp.Export(context.Background(), tripleOverlap)
	require.NoError(t, err)
	second, _, err := exp.Export(context.Background(), quiet)
	require.NoError(t, err)
	assert.Equal(t, collect(first), collect(second))
}

func TestExport_Canceled(t *testing.T) {
	exp := &engine.Exporter{Resolver: newResolver(t, nil)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data, _, err := exp.Export(ctx, tripleOverlap)
	assert.Nil(t, data)
	assert.True(t, errors.Is(err, context.Canceled))
}
