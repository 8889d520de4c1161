package generator

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchpad/internal/catalog"
	"launchpad/internal/config"
	lperrors "launchpad/internal/errors"
	"launchpad/internal/event"
	"launchpad/internal/heropool"
	"launchpad/internal/llm"
	"launchpad/internal/logging"
	"launchpad/internal/observability"
	"launchpad/internal/promo"
	jsonx "launchpad/internal/shared/json"
	"launchpad/internal/swarm"
)

var (
	liveBackend = config.BackendConfig{APIKey: "sk-live-test"}
	fixedNow    = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
)

func scriptedEvent() *llm.ScriptedClient {
	return llm.NewScriptedClient().
		Reply(event.TaskSpeakers, `{"speakers":[{"name":"Ada Lovelace","role":"Founder"},{"name":"Alan Turing","role":"Professor"}]}`).
		Reply(event.TaskVenue, `{"name":"Funkhaus Berlin","address":"Nalepastr. 18"}`).
		Reply(event.TaskSchedule, `[{"time":"9:00 AM","title":"Opening","speaker":"Ada Lovelace","track":"Research"},{"time":"10:00 AM","title":"Agents","speaker":"Alan Turing","track":"Applied"}]`).
		Reply(event.TaskPricing, `{"early_bird":"$99","regular":"$199","vip":"$499"}`).
		Reply(event.TaskBranding, `{"name":"Berlin AI Week","tagline":"Models meet makers","description":"Two days of AI.","topic_key":"ai"}`)
}

func newService(t *testing.T, backend config.BackendConfig, opts ...Option) *Service {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(logging.Nop()),
		WithSwarmConfig(config.SwarmConfig{TaskTimeout: time.Second}),
	}, opts...)
	return New(backend, cat, opts...)
}

var berlin = event.Input{Topic: "AI", City: "Berlin", Date: "2026-01-01"}

// zeroFields names the top-level event fields left empty.
func zeroFields(ev event.Event) []string {
	var zero []string
	v := reflect.ValueOf(ev)
	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Name
		if name == "Generation" {
			continue
		}
		if v.Field(i).IsZero() {
			zero = append(zero, name)
		}
	}
	return zero
}

func TestGenerateEventWithoutKeyUsesTemplate(t *testing.T) {
	client := scriptedEvent()
	svc := newService(t, config.BackendConfig{APIKey: config.DefaultPlaceholderKey}, WithClient(client))

	res, err := svc.GenerateEvent(context.Background(), berlin)
	require.NoError(t, err)

	assert.False(t, svc.Available())
	assert.Equal(t, event.ModeTemplate, res.Mode)
	assert.Equal(t, event.ModeTemplate, res.Event.Generation.Mode)
	assert.Empty(t, client.Calls())
	assert.NotEmpty(t, res.Event.ID)
	assert.Equal(t, fixedNow, res.Event.CreatedAt)
	assert.Regexp(t, `^run-`, res.Event.Generation.RunID)

	expected := svc.Template().Generate(berlin)
	assert.Equal(t, expected.Name, res.Event.Name)
	assert.Equal(t, expected.HeroImageURL, res.Event.HeroImageURL)

	raw, err := jsonx.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"diagnostics":{"timings":{},"errors":[]}`)
	assert.Contains(t, string(raw), `"timings":{},"errors":[]}`)
	assert.NotContains(t, string(raw), "null")
}

func TestGenerateEventSwarmHasSameShapeAsTemplate(t *testing.T) {
	tmpl, err := newService(t, config.BackendConfig{}).GenerateEvent(context.Background(), berlin)
	require.NoError(t, err)

	live, err := newService(t, liveBackend, WithClient(scriptedEvent())).GenerateEvent(context.Background(), berlin)
	require.NoError(t, err)

	assert.Equal(t, event.ModeSwarm, live.Mode)
	assert.Empty(t, live.Diagnostics.Errors)
	assert.Len(t, live.Event.Generation.Timings, 5)
	assert.Equal(t, "Berlin AI Week", live.Event.Name)
	assert.Equal(t, tmpl.Event.Slug, live.Event.Slug)
	assert.Equal(t, tmpl.Event.HeroImageURL, live.Event.HeroImageURL)

	assert.Empty(t, zeroFields(tmpl.Event))
	assert.Equal(t, zeroFields(tmpl.Event), zeroFields(live.Event))
}

func TestGenerateEventJSONKeysMatchAcrossModes(t *testing.T) {
	springfield := event.Input{Topic: "AI", City: "Springfield", Date: "2026-01-01"}
	client := scriptedEvent().
		Reply(event.TaskSpeakers, `{"speakers":[{"name":"Ada Lovelace","role":"Founder","bio":"Wrote the first program."}]}`)

	tmpl, err := newService(t, config.BackendConfig{}).GenerateEvent(context.Background(), springfield)
	require.NoError(t, err)
	require.NotEmpty(t, tmpl.Event.Venue.CapacityNote)

	live, err := newService(t, liveBackend, WithClient(client)).GenerateEvent(context.Background(), springfield)
	require.NoError(t, err)
	require.Equal(t, event.ModeSwarm, live.Mode)
	require.Equal(t, "Wrote the first program.", live.Event.Speakers[0].Bio)

	assert.Equal(t, jsonKeys(t, tmpl), jsonKeys(t, live))
}

func TestGeneratePromoJSONKeysMatchAcrossModes(t *testing.T) {
	in := promo.Input{Name: "Berlin AI Week", Topic: "AI", City: "Berlin", Date: "2026-01-01", Tagline: "Models meet makers"}
	client := llm.NewScriptedClient().
		Reply(promo.TaskSocial, `{"linkedin":[{"text":"hello"}]}`).
		Otherwise(func(context.Context, llm.JSONRequest) (string, error) { return "", errors.New("down") })

	tmpl, err := newService(t, config.BackendConfig{}).GeneratePromo(context.Background(), in)
	require.NoError(t, err)
	live, err := newService(t, liveBackend, WithClient(client)).GeneratePromo(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, event.ModeSwarm, live.Mode)

	assert.Equal(t, jsonKeys(t, tmpl), jsonKeys(t, live))
}

// jsonKeys returns every object key path in v's JSON encoding. Array
// elements share the "[]" segment. Timing maps and schema.org payloads are
// free-form and not descended into.
func jsonKeys(t *testing.T, v any) []string {
	t.Helper()
	raw, err := jsonx.Marshal(v)
	require.NoError(t, err)
	var decoded any
	require.NoError(t, jsonx.Unmarshal(raw, &decoded))

	set := map[string]struct{}{}
	var walk func(prefix string, node any)
	walk = func(prefix string, node any) {
		switch n := node.(type) {
		case map[string]any:
			for key, child := range n {
				path := prefix + "." + key
				set[path] = struct{}{}
				if key != "timings" && key != "schema_json" {
					walk(path, child)
				}
			}
		case []any:
			for _, child := range n {
				walk(prefix+"[]", child)
			}
		}
	}
	walk("", decoded)

	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func TestGenerateEventRejectsInvalidInput(t *testing.T) {
	svc := newService(t, liveBackend, WithClient(scriptedEvent()))
	_, err := svc.GenerateEvent(context.Background(), event.Input{Topic: "AI"})
	require.ErrorIs(t, err, event.ErrInvalidInput)
	assert.Contains(t, err.Error(), "city, date")
}

func TestGenerateEventOrchestratorFailureServesTemplate(t *testing.T) {
	cases := map[string]func(event.Fallbacks) []swarm.Task{
		"duplicate tasks": func(event.Fallbacks) []swarm.Task {
			dup := swarm.Spec[string]{Name: "same", Work: func(context.Context) (string, error) { return "x", nil }}
			return []swarm.Task{dup, dup}
		},
		"panic": func(event.Fallbacks) []swarm.Task {
			panic("task builder exploded")
		},
	}
	for name, build := range cases {
		t.Run(name, func(t *testing.T) {
			svc := newService(t, liveBackend, WithClient(scriptedEvent()))
			svc.eventTasks = build

			res, err := svc.GenerateEvent(context.Background(), berlin)
			require.NoError(t, err)
			assert.Equal(t, event.ModeTemplate, res.Mode)
			assert.Equal(t, svc.Template().Generate(berlin).Name, res.Event.Name)
			assert.Empty(t, zeroFields(res.Event))
		})
	}
}

func TestGenerateEventOpenBreakerServesTemplate(t *testing.T) {
	breaker := lperrors.NewCircuitBreaker("backend", lperrors.CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
	})
	breaker.Mark(errors.New("boom"))
	require.Equal(t, lperrors.StateOpen, breaker.State())

	client := scriptedEvent()
	svc := newService(t, liveBackend, WithClient(client), WithBreaker(breaker))

	res, err := svc.GenerateEvent(context.Background(), berlin)
	require.NoError(t, err)
	assert.Equal(t, event.ModeTemplate, res.Mode)
	assert.Empty(t, client.Calls())
}

func TestGenerateEventTaskFailuresStaySwarm(t *testing.T) {
	client := scriptedEvent().On(event.TaskVenue, func(context.Context, llm.JSONRequest) (string, error) {
		return "", errors.New("rate limited")
	})
	svc := newService(t, liveBackend, WithClient(client))

	res, err := svc.GenerateEvent(context.Background(), berlin)
	require.NoError(t, err)
	assert.Equal(t, event.ModeSwarm, res.Mode)
	assert.Equal(t, []string{"venue: rate limited"}, res.Event.Generation.Errors)
	assert.Equal(t, "Berlin Convention Center", res.Event.Venue.Name)
}

func TestGenerateEventClaimsUniqueHeroes(t *testing.T) {
	registry := heropool.NewRegistry()
	svc := newService(t, config.BackendConfig{}, WithClaimer(registry))

	seen := map[string]string{}
	for _, city := range []string{"Berlin", "Paris", "Lisbon", "Madrid", "Rome", "Vienna", "Prague", "Oslo"} {
		res, err := svc.GenerateEvent(context.Background(), event.Input{Topic: "AI", City: city, Date: "2026-01-01"})
		require.NoError(t, err)
		hero := res.Event.HeroImageURL
		require.NotEmpty(t, hero)
		assert.NotContains(t, seen, hero, "hero reused by %s and %s", seen[hero], city)
		seen[hero] = city
	}

	again, err := svc.GenerateEvent(context.Background(), event.Input{Topic: "AI", City: "Berlin", Date: "2026-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "Berlin", seen[again.Event.HeroImageURL])
}

func TestGenerateCountsRequestsByMode(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.MustNewSwarmMetrics(reg)
	svc := newService(t, config.BackendConfig{}, WithMetrics(metrics))

	_, err := svc.GenerateEvent(context.Background(), berlin)
	require.NoError(t, err)
	_, err = svc.GeneratePromo(context.Background(), promo.Input{Name: "Summit", Topic: "AI"})
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "launchpad_generator_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestGenerateEventObserverSeesEveryTask(t *testing.T) {
	svc := newService(t, liveBackend, WithClient(scriptedEvent()))

	finished := make(chan string, 5)
	observer := swarm.ObserverFuncs{Finished: func(o swarm.Outcome) { finished <- o.Name }}

	_, err := svc.GenerateEventObserved(context.Background(), berlin, observer)
	require.NoError(t, err)
	close(finished)

	var names []string
	for name := range finished {
		names = append(names, name)
	}
	assert.ElementsMatch(t, []string{event.TaskSpeakers, event.TaskVenue, event.TaskSchedule, event.TaskPricing, event.TaskBranding}, names)
}

func TestGeneratePromo(t *testing.T) {
	in := promo.Input{Name: "Berlin AI Week", Topic: "AI", City: "Berlin", Date: "2026-01-01", Tagline: "Models meet makers"}

	t.Run("template", func(t *testing.T) {
		res, err := newService(t, config.BackendConfig{}).GeneratePromo(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, event.ModeTemplate, res.Mode)
		assert.Len(t, res.Kit.Emails.Emails, 3)
		assert.Regexp(t, `^run-`, res.Kit.Generation.RunID)
	})

	t.Run("swarm", func(t *testing.T) {
		client := llm.NewScriptedClient().
			Reply(promo.TaskSocial, `{"linkedin":[{"text":"hello"}]}`).
			Otherwise(func(context.Context, llm.JSONRequest) (string, error) { return "", errors.New("down") })
		res, err := newService(t, liveBackend, WithClient(client)).GeneratePromo(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, event.ModeSwarm, res.Mode)
		assert.Equal(t, "hello", res.Kit.Social.LinkedIn[0].Text)
		assert.Len(t, res.Diagnostics.Errors, 5)
		assert.Len(t, res.Kit.Emails.Emails, 3)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := newService(t, config.BackendConfig{}).GeneratePromo(context.Background(), promo.Input{Name: "x"})
		require.ErrorIs(t, err, promo.ErrInvalidInput)
	})
}
