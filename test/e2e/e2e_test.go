// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-order-workers/internal/classifier"
	"voice-order-workers/internal/common/camunda"
	"voice-order-workers/internal/common/logger"
	"voice-order-workers/internal/dialogue"
	"voice-order-workers/internal/menu"
	"voice-order-workers/internal/models"
	"voice-order-workers/internal/nlu/extract"
	"voice-order-workers/internal/nlu/fuzzy"
	"voice-order-workers/internal/orders"

	detectintent "voice-order-workers/internal/workers/dialogue/detect-intent"
	resolveturn "voice-order-workers/internal/workers/dialogue/resolve-turn"
	publishorderevent "voice-order-workers/internal/workers/orders/publish-order-event"
	queryorders "voice-order-workers/internal/workers/orders/query-orders"
	submitorder "voice-order-workers/internal/workers/orders/submit-order"
)

// ==========================
// 1. Fake collaborators
// ==========================

// fakeClassifier answers /detect-intent from a fixed utterance table.
type fakeClassifier map[string]string

func (f fakeClassifier) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	intent, ok := f[req.Text]
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"intent": intent})
}

// fakeElasticsearch stores indexed orders and answers name searches.
type fakeElasticsearch struct {
	mu        sync.Mutex
	docs      []models.Order
	failIndex bool
}

func (f *fakeElasticsearch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.URL.Path == "/orders/_doc" && f.failIndex:
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"unavailable"}`))

	case r.URL.Path == "/orders/_doc":
		var o models.Order
		_ = json.NewDecoder(r.Body).Decode(&o)
		f.docs = append(f.docs, o)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))

	case r.URL.Path == "/orders/_search":
		var q struct {
			Query struct {
				Match struct {
					Name struct {
						Query string `json:"query"`
					} `json:"name"`
				} `json:"match"`
			} `json:"query"`
		}
		_ = json.NewDecoder(r.Body).Decode(&q)

		hits := make([]map[string]interface{}, 0)
		for _, o := range f.docs {
			if o.Name == q.Query.Match.Name.Query {
				hits = append(hits, map[string]interface{}{"_source": o})
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"hits": map[string]interface{}{"hits": hits},
		})

	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{}`))
	}
}

type recordingSNS struct {
	messages []string
}

func (s *recordingSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	s.messages = append(s.messages, aws.ToString(in.Message))
	return &sns.PublishOutput{MessageId: aws.String("msg-" + time.Now().Format("150405"))}, nil
}

// ==========================
// 2. Worker wiring
// ==========================

type pipeline struct {
	detect  *detectintent.Handler
	resolve *resolveturn.Handler
	submit  *submitorder.Handler
	query   *queryorders.Handler
	publish *publishorderevent.Handler

	store orders.Store
	es    *fakeElasticsearch
	sns   *recordingSNS
}

func newPipeline(t *testing.T, intents fakeClassifier) *pipeline {
	log := logger.NewTestLogger(t)

	classifierServer := httptest.NewServer(intents)
	t.Cleanup(classifierServer.Close)

	fakeES := &fakeElasticsearch{}
	esServer := httptest.NewServer(fakeES)
	t.Cleanup(esServer.Close)
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{esServer.URL}})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	fileStore, err := orders.NewFileStore(filepath.Join(t.TempDir(), "orders.json"))
	require.NoError(t, err)
	store := orders.NewCachedStore(fileStore, rdb, time.Minute, log)
	index := orders.NewSearchIndex(es, orders.DefaultSearchIndex, log)

	settings := menu.Default()
	names := extract.NewNameExtractor(settings)
	items := extract.NewItemExtractor(settings, fuzzy.New(settings.Matching()))
	client := classifier.NewClient(classifier.Config{BaseURL: classifierServer.URL, Timeout: time.Second}, log)
	agent := dialogue.NewAgent(client, dialogue.NewDispatcher(settings, items, names), log)
	resolver := orders.NewResolver(store, names, orders.ResolverConfig{
		ETA: settings.ETA(),
		IDs: orders.NewIDGenerator(settings.Numerals()),
	}, log)
	topic := &recordingSNS{}

	return &pipeline{
		detect:  detectintent.NewHandler(detectintent.LoadConfig(), agent, log),
		resolve: resolveturn.NewHandler(resolveturn.LoadConfig(), agent, names, log),
		submit:  submitorder.NewHandler(submitorder.LoadConfig(), resolver, index, log),
		query:   queryorders.NewHandler(queryorders.LoadConfig(), store, index, log),
		publish: publishorderevent.NewHandler(publishorderevent.LoadConfig(), orders.NewEventPublisher(topic, "arn:aws:sns:eu-central-1:000000000000:orders", log), log),
		store:   store,
		es:      fakeES,
		sns:     topic,
	}
}

// turn runs detect-intent then resolve-turn, the way the BPMN process does.
func (p *pipeline) turn(t *testing.T, utterance string, history []string) *resolveturn.Output {
	t.Helper()
	ctx := context.Background()

	detected, err := p.detect.Execute(ctx, &detectintent.Input{Utterance: utterance})
	require.NoError(t, err)

	out, err := p.resolve.Execute(ctx, &resolveturn.Input{
		Utterance:     utterance,
		Intent:        detected.Intent,
		Name:          detected.Name,
		ReplyText:     detected.ReplyText,
		DialogHistory: history,
	})
	require.NoError(t, err)
	return out
}

// ==========================
// 3. Conversation flows
// ==========================

func TestConversationFlow(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t, fakeClassifier{
		"مرحبا، شو عندكم بالقائمة": models.IntentGreetingAndMenu,
		"بدي بيتزا وبرجر":          models.IntentPlaceOrder,
		"اسمي سامي":                models.IntentProvideName,
	})

	var history []string

	// 1. greeting with a menu request lists the catalog
	greet := p.turn(t, "مرحبا، شو عندكم بالقائمة", history)
	assert.Equal(t, models.IntentGreetingAndMenu, greet.Intent)
	assert.Contains(t, greet.ReplyText, "🍽️ بيتزا")
	history = append(history, "مرحبا، شو عندكم بالقائمة")

	// 2. order without a name asks for it
	order := p.turn(t, "بدي بيتزا وبرجر", history)
	assert.Equal(t, models.IntentPlaceOrder, order.Intent)
	assert.ElementsMatch(t, []string{"بيتزا", "برجر"}, order.Items)
	assert.False(t, order.OrderIsValid)
	assert.Contains(t, order.ReplyText, "أخبرني باسمك")
	history = append(history, "بدي بيتزا وبرجر")

	// 3. the caller gives a name
	named := p.turn(t, "اسمي سامي", history)
	assert.Equal(t, "سامي", named.Name)
	history = append(history, "اسمي سامي")

	// 4. submit picks the name up from history
	submitted, err := p.submit.Execute(ctx, &submitorder.Input{Items: order.Items, DialogHistory: history})
	require.NoError(t, err)
	assert.Equal(t, "سامي", submitted.Name)
	assert.True(t, submitted.Indexed)
	assert.True(t, strings.HasPrefix(submitted.ReplyText, "تم استلام طلبك ("))
	assert.Contains(t, submitted.ReplyText, submitted.OrderID)

	// 5. the order is found by id (through the cache) and by name (through the index)
	byID, err := p.query.Execute(ctx, &queryorders.Input{OrderID: submitted.OrderID})
	require.NoError(t, err)
	require.NotNil(t, byID.Order)
	assert.Equal(t, "سامي", byID.Order.Name)

	byName, err := p.query.Execute(ctx, &queryorders.Input{CustomerName: "سامي"})
	require.NoError(t, err)
	assert.Equal(t, 1, byName.TotalCount)

	// 6. the order.created event goes out on SNS
	published, err := p.publish.Execute(ctx, &publishorderevent.Input{
		OrderID:   submitted.OrderID,
		Name:      submitted.Name,
		Items:     submitted.Items,
		ETA:       submitted.ETA,
		Status:    submitted.Status,
		Timestamp: submitted.Timestamp,
	})
	require.NoError(t, err)
	assert.Equal(t, publishorderevent.StatusPublished, published.Status)
	require.Len(t, p.sns.messages, 1)
	assert.Contains(t, p.sns.messages[0], submitted.OrderID)
}

func TestConversationFlow_ClassifierOutage(t *testing.T) {
	p := newPipeline(t, fakeClassifier{})

	out := p.turn(t, "بدي بيتزا", nil)

	assert.Equal(t, models.IntentUnknown, out.Intent)
	assert.Equal(t, dialogue.UnknownReply, out.ReplyText)
	assert.False(t, out.OrderIsValid)
}

func TestConversationFlow_SubmitWithoutName(t *testing.T) {
	p := newPipeline(t, fakeClassifier{})

	_, err := p.submit.Execute(context.Background(), &submitorder.Input{
		Items:         []string{"بيتزا"},
		DialogHistory: []string{"مرحبا", "بدي بيتزا"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MISSING_NAME")

	all, err := p.store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestConversationFlow_IndexOutage(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t, fakeClassifier{})
	p.es.mu.Lock()
	p.es.failIndex = true
	p.es.mu.Unlock()

	submitted, err := p.submit.Execute(ctx, &submitorder.Input{
		Name:  "سامي",
		Items: []string{"بيتزا"},
	})
	require.NoError(t, err)
	assert.False(t, submitted.Indexed)

	found, err := p.query.Execute(ctx, &queryorders.Input{CustomerName: "سامي"})
	require.NoError(t, err)
	require.Equal(t, 1, found.TotalCount)
	assert.Equal(t, submitted.OrderID, found.Orders[0].OrderID)
}

// ==========================
// 4. Live broker (opt-in)
// ==========================

// TestLiveBroker checks that a real gateway is reachable. It runs only when
// E2E_ZEEBE_ADDRESS is set, e.g. against docker-compose.
func TestLiveBroker(t *testing.T) {
	addr := os.Getenv("E2E_ZEEBE_ADDRESS")
	if addr == "" {
		t.Skip("E2E_ZEEBE_ADDRESS not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := camunda.Connect(ctx, &camunda.ClientConfig{
		GatewayAddress:         addr,
		UsePlaintextConnection: true,
		RetryConfig:            &camunda.RetryConfig{MaxRetries: 3, BaseDelay: time.Second, MaxDelay: 5 * time.Second},
	}, logger.NewTestLogger(t))
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.HealthCheck(ctx))
}
