package telemetry

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/internal/observability"
	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/services/servicestest"
)

func TestClassify(t *testing.T) {
	normal, warning := Range{0, 80}, Range{80, 120}

	tests := []struct {
		value float64
		want  Status
	}{
		{0, StatusNormal},
		{80, StatusNormal}, // shared bound goes to normal
		{80.1, StatusWarning},
		{120, StatusWarning},
		{120.1, StatusCritical},
		{-0.1, StatusCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.value, normal, warning), "value %v", tt.value)
	}

	// furnace pressure band is negative
	assert.Equal(t, StatusNormal, Classify(-2.5, Range{-3, -2}, Range{-4, -1}))
	assert.Equal(t, StatusWarning, Classify(-1.5, Range{-3, -2}, Range{-4, -1}))
	assert.Equal(t, StatusCritical, Classify(0, Range{-3, -2}, Range{-4, -1}))
}

func TestGenerator_Ranges(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(42)))

	for i := 0; i < 500; i++ {
		r := gen.Next()
		assert.GreaterOrEqual(t, r.Airflow.PrimaryAirflow, 850.0)
		assert.Less(t, r.Airflow.PrimaryAirflow, 950.0)
		assert.GreaterOrEqual(t, r.Airflow.FurnacePressure, -2.5)
		assert.Less(t, r.Airflow.FurnacePressure, -2.0)
		assert.GreaterOrEqual(t, r.GasComposition.CarbonMonoxide, 50.0)
		assert.Less(t, r.GasComposition.CarbonMonoxide, 80.0)
		assert.GreaterOrEqual(t, r.GasComposition.NOx, 180.0)
		assert.Less(t, r.GasComposition.NOx, 220.0)
		assert.GreaterOrEqual(t, r.Energy.SteamPressure, 45.0)
		assert.Less(t, r.Energy.SteamPressure, 48.0)
		assert.GreaterOrEqual(t, r.Auxiliary.LimePH, 11.2)
		assert.Less(t, r.Auxiliary.LimePH, 11.7)
		assert.False(t, r.Timestamp.IsZero())
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a := NewSeededGenerator(7)
	b := NewSeededGenerator(7)
	for i := 0; i < 10; i++ {
		ra, rb := a.Next(), b.Next()
		assert.Equal(t, ra.GasComposition, rb.GasComposition)
		assert.Equal(t, ra.Energy, rb.Energy)
	}
}

func TestEvaluate(t *testing.T) {
	r := Reading{
		Airflow:        Airflow{PrimaryAirflow: 900, SecondaryAirflow: 520, IDFanSpeed: 80, FurnacePressure: -2.5},
		GasComposition: GasComposition{Oxygen: 9, CarbonMonoxide: 130, CarbonDioxide: 13, NOx: 190, SO2: 20, HCl: 9},
		Energy:         Energy{SteamFlow: 45, SteamTemp: 490, SteamPressure: 45, PowerGenerated: 9, PlantEfficiency: 88},
	}

	statuses := Evaluate(r)
	require.Len(t, statuses, len(Thresholds()))

	byMetric := map[Metric]Status{}
	for _, s := range statuses {
		byMetric[s.Metric] = s.Status
	}
	assert.Equal(t, StatusWarning, byMetric[MetricSecondaryAirflow])
	assert.Equal(t, StatusCritical, byMetric[MetricCarbonMonoxide])
	assert.Equal(t, StatusNormal, byMetric[MetricNOx])
	assert.Equal(t, StatusNormal, byMetric[MetricPlantEfficiency])
	assert.Equal(t, MetricPrimaryAirflow, statuses[0].Metric)
}

func TestAlerts(t *testing.T) {
	calm := Reading{
		GasComposition: GasComposition{CarbonMonoxide: 100, NOx: 200},
		Energy:         Energy{SteamPressure: 42},
	}
	assert.Empty(t, Alerts(calm), "limits are exclusive")

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	bad := Reading{
		Timestamp:      ts,
		GasComposition: GasComposition{CarbonMonoxide: 101, NOx: 215},
		Energy:         Energy{SteamPressure: 41},
	}
	alerts := Alerts(bad)
	require.Len(t, alerts, 3)
	assert.Equal(t, StatusCritical, alerts[0].Level)
	assert.Equal(t, MetricCarbonMonoxide, alerts[0].Metric)
	assert.Equal(t, MetricSteamPressure, alerts[1].Metric)
	assert.Equal(t, StatusWarning, alerts[1].Level)
	assert.Equal(t, MetricNOx, alerts[2].Metric)
	assert.Equal(t, ts, alerts[2].Time)
	assert.NotEqual(t, alerts[0].ID, alerts[1].ID)
}

// scriptedSource replays readings, repeating the last one
type scriptedSource struct {
	mu       sync.Mutex
	readings []Reading
	i        int
}

func (s *scriptedSource) Next() Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.readings[s.i]
	if s.i < len(s.readings)-1 {
		s.i++
	}
	return r
}

func reading(co float64) Reading {
	return Reading{
		Timestamp:      time.Now(),
		GasComposition: GasComposition{CarbonMonoxide: co, NOx: 190},
		Energy:         Energy{SteamPressure: 45},
	}
}

func TestMonitor_HistoryRing(t *testing.T) {
	var readings []Reading
	for i := 0; i < 8; i++ {
		readings = append(readings, reading(float64(i)))
	}
	m := NewMonitor(&scriptedSource{readings: readings}, nil, Config{HistorySize: 3, AlertLimit: 5}, zap.NewNop())

	assert.Nil(t, m.Current())
	assert.Empty(t, m.History())

	m.Sample(context.Background())
	m.Sample(context.Background())
	history := m.History()
	require.Len(t, history, 2)
	assert.Equal(t, 0.0, history[0].GasComposition.CarbonMonoxide)

	for i := 0; i < 4; i++ {
		m.Sample(context.Background())
	}
	history = m.History()
	require.Len(t, history, 3)
	assert.Equal(t, []float64{3, 4, 5}, []float64{
		history[0].GasComposition.CarbonMonoxide,
		history[1].GasComposition.CarbonMonoxide,
		history[2].GasComposition.CarbonMonoxide,
	})
	assert.Equal(t, 5.0, m.Current().GasComposition.CarbonMonoxide)
}

func TestMonitor_AlertsNewestFirstAndCapped(t *testing.T) {
	var readings []Reading
	for i := 0; i < 6; i++ {
		readings = append(readings, reading(101+float64(i)))
	}
	m := NewMonitor(&scriptedSource{readings: readings}, nil, Config{HistorySize: 10, AlertLimit: 4}, zap.NewNop())

	before := testutil.ToFloat64(observability.TelemetryAlerts.WithLabelValues("critical"))
	for i := 0; i < 6; i++ {
		m.Sample(context.Background())
	}

	alerts := m.RecentAlerts()
	require.Len(t, alerts, 4)
	assert.Equal(t, 106.0, alerts[0].Value)
	assert.Equal(t, 103.0, alerts[3].Value)
	assert.Equal(t, before+6, testutil.ToFloat64(observability.TelemetryAlerts.WithLabelValues("critical")))
}

func TestMonitor_AlertBatchKeptWhole(t *testing.T) {
	severe := Reading{
		Timestamp:      time.Now(),
		GasComposition: GasComposition{CarbonMonoxide: 140, NOx: 230},
		Energy:         Energy{SteamPressure: 40},
	}
	m := NewMonitor(&scriptedSource{readings: []Reading{severe}}, nil, Config{HistorySize: 5, AlertLimit: 4}, zap.NewNop())

	m.Sample(context.Background())
	require.Len(t, m.RecentAlerts(), 3)

	m.Sample(context.Background())
	alerts := m.RecentAlerts()
	// three new alerts plus the three carried over
	require.Len(t, alerts, 6)
	assert.Equal(t, MetricCarbonMonoxide, alerts[0].Metric)
	assert.Equal(t, MetricCarbonMonoxide, alerts[3].Metric)

	m.Sample(context.Background())
	assert.Len(t, m.RecentAlerts(), 6)
}

func TestMonitor_Snapshot(t *testing.T) {
	m := NewMonitor(&scriptedSource{readings: []Reading{reading(130)}}, nil, DefaultConfig(), zap.NewNop())

	snap := m.Snapshot()
	assert.Nil(t, snap.Current)
	assert.NotNil(t, snap.Statuses)
	assert.False(t, snap.Running)

	m.Sample(context.Background())
	snap = m.Snapshot()
	require.NotNil(t, snap.Current)
	assert.Len(t, snap.Statuses, len(Thresholds()))
	assert.Len(t, snap.History, 1)
	assert.Len(t, snap.Alerts, 1)
}

func TestMonitor_Persist(t *testing.T) {
	repo := new(servicestest.MockMonitoringRepository)
	siteID := uuid.New()
	m := NewMonitor(&scriptedSource{readings: []Reading{reading(60)}}, repo,
		Config{HistorySize: 5, AlertLimit: 5, Persist: true, SiteID: &siteID}, zap.NewNop())

	repo.On("Insert", mock.Anything, mock.MatchedBy(func(r *models.MonitoringRecord) bool {
		return r.SiteID != nil && *r.SiteID == siteID && r.COLevel != nil && *r.COLevel == 60
	})).Return(nil).Once()
	repo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	m.Sample(context.Background())
	m.Sample(context.Background()) // failure is logged, not fatal

	repo.AssertNumberOfCalls(t, "Insert", 2)
	assert.Len(t, m.History(), 2)
}

func TestMonitor_Stored(t *testing.T) {
	repo := new(servicestest.MockMonitoringRepository)
	m := NewMonitor(NewSeededGenerator(1), repo, DefaultConfig(), zap.NewNop())

	repo.On("ListRecent", mock.Anything, (*uuid.UUID)(nil), 100).Return(nil, nil)
	records, err := m.Stored(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.NotNil(t, records)

	noRepo := NewMonitor(NewSeededGenerator(1), nil, DefaultConfig(), zap.NewNop())
	records, err = noRepo.Stored(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMonitor_StartStop(t *testing.T) {
	m := NewMonitor(NewSeededGenerator(3), nil, Config{Schedule: "@every 1h"}, zap.NewNop())

	require.NoError(t, m.Start())
	assert.True(t, m.Running())
	assert.NotNil(t, m.Current(), "Start takes an immediate sample")
	assert.ErrorIs(t, m.Start(), ErrAlreadyRunning)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.Stop(ctx))
	assert.False(t, m.Running())
	assert.ErrorIs(t, m.Stop(ctx), ErrNotRunning)
}

func TestMonitor_InvalidSchedule(t *testing.T) {
	m := NewMonitor(NewSeededGenerator(3), nil, Config{Schedule: "every now and then"}, zap.NewNop())

	err := m.Start()
	require.Error(t, err)
	assert.False(t, m.Running())
}

func TestToRecord(t *testing.T) {
	r := NewSeededGenerator(5).Next()
	rec := ToRecord(r, nil)

	assert.Nil(t, rec.SiteID)
	assert.Equal(t, r.Timestamp, rec.Timestamp)
	require.NotNil(t, rec.NOxLevel)
	assert.Equal(t, r.GasComposition.NOx, *rec.NOxLevel)
	require.NotNil(t, rec.PowerOutput)
	assert.Equal(t, r.Energy.PowerGenerated, *rec.PowerOutput)
}
