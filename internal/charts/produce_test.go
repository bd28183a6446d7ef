package charts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Veraticus/salesflow/internal/model"
)

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Name() string {
	return "mock"
}

func (m *mockRenderer) Render(ctx context.Context, chart Chart) error {
	args := m.Called(ctx, chart.Name)
	return args.Error(0)
}

func TestProduce_IndependentFailures(t *testing.T) {
	r := &mockRenderer{}
	r.On("Render", mock.Anything, Revenue.Name).Return(nil)
	r.On("Render", mock.Anything, Margin.Name).Return(errors.New("boom"))
	r.On("Render", mock.Anything, ProfitTrend.Name).Return(nil)

	err := Produce(context.Background(), sampleTable(), Definitions(), r)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "profit_margin chart (mock): boom")
	r.AssertNumberOfCalls(t, "Render", 3)
}

func TestProduce_NoRenderers(t *testing.T) {
	err := Produce(context.Background(), sampleTable(), Definitions())
	assert.ErrorIs(t, err, ErrNoRenderers)
}

func TestProduce_EmptyTable(t *testing.T) {
	r := &mockRenderer{}

	err := Produce(context.Background(), &model.Table{}, Definitions(), r)

	assert.NoError(t, err)
	r.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestProduce_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &mockRenderer{}

	err := Produce(ctx, sampleTable(), Definitions(), r)

	assert.ErrorIs(t, err, context.Canceled)
	r.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}
