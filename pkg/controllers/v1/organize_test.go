package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/envelope-zero/ledger/pkg/controllers/v1"
	"github.com/envelope-zero/ledger/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRoot() {
	r := suite.request(http.MethodGet, "http://example.com/v1", "", http.StatusOK)

	var root v1.RootResponse
	test.DecodeResponse(suite.T(), &r, &root)
	suite.Assert().Equal("http://example.com/v1/envelopes", root.Links.Envelopes)
	suite.Assert().Equal("http://example.com/v1/import", root.Links.Import)
}

func (suite *TestSuiteStandard) TestOptions() {
	tests := []struct {
		url   string
		allow string
	}{
		{"http://example.com/v1", "OPTIONS, GET"},
		{"http://example.com/v1/envelopes", "OPTIONS, GET, POST"},
		{fmt.Sprintf("http://example.com/v1/envelopes/%s", uuid.New()), "OPTIONS, GET, PATCH, DELETE"},
		{"http://example.com/v1/budgets", "OPTIONS, GET, PUT"},
		{fmt.Sprintf("http://example.com/v1/incomes/%s", uuid.New()), "OPTIONS, GET, DELETE"},
		{"http://example.com/v1/expenses/subsidized", "OPTIONS, POST"},
		{"http://example.com/v1/months/2025-02/snapshot", "OPTIONS, GET, POST"},
		{"http://example.com/v1/import", "OPTIONS, POST"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.url, func(t *testing.T) {
			r := test.Request(t, suite.ledger, http.MethodOptions, tt.url, "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestEnvelopeLifecycle() {
	envelope := suite.createTestEnvelope("Living Cost")
	suite.Assert().Equal("Living Cost", envelope.Name)
	suite.Assert().NotEqual(uuid.Nil, envelope.ID)

	url := fmt.Sprintf("http://example.com/v1/envelopes/%s", envelope.ID)

	// Only the description is updated, the name is kept
	r := suite.request(http.MethodPatch, url, map[string]any{"description": "Monthly costs"}, http.StatusOK)
	var updated v1.EnvelopeResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal("Living Cost", updated.Data.Name)
	suite.Assert().Equal("Monthly costs", updated.Data.Description)

	r = suite.request(http.MethodGet, "http://example.com/v1/envelopes", "", http.StatusOK)
	var list v1.EnvelopeListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Require().Len(list.Data, 1)

	suite.request(http.MethodDelete, url, "", http.StatusNoContent)
	suite.request(http.MethodGet, url, "", http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestEnvelopeErrors() {
	suite.createTestEnvelope("Living Cost")

	r := suite.request(http.MethodPost, "http://example.com/v1/envelopes", map[string]any{"name": "Living Cost"}, http.StatusBadRequest)
	suite.Assert().Contains(suite.apiError(&r).Error, "must be unique")

	suite.request(http.MethodPost, "http://example.com/v1/envelopes", map[string]any{"name": " "}, http.StatusBadRequest)
	suite.request(http.MethodPost, "http://example.com/v1/envelopes", "", http.StatusBadRequest)
	suite.request(http.MethodPost, "http://example.com/v1/envelopes", `{"name": 5}`, http.StatusBadRequest)
	suite.request(http.MethodGet, "http://example.com/v1/envelopes/not-a-uuid", "", http.StatusBadRequest)
	suite.request(http.MethodPatch, fmt.Sprintf("http://example.com/v1/envelopes/%s", uuid.New()), map[string]any{"name": "x"}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCategoryLifecycle() {
	envelope := suite.createTestEnvelope("Living Cost")
	other := suite.createTestEnvelope("Fun")
	category := suite.createTestCategory(envelope.ID, "Meals")
	suite.createTestCategory(other.ID, "Games")

	r := suite.request(http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?envelope=%s", envelope.ID), "", http.StatusOK)
	var list v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().Equal(category.ID, list.Data[0].ID)

	url := fmt.Sprintf("http://example.com/v1/categories/%s", category.ID)
	r = suite.request(http.MethodPatch, url, map[string]any{"envelopeId": other.ID}, http.StatusOK)
	var updated v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal(other.ID, updated.Data.EnvelopeID)
	suite.Assert().Equal("Meals", updated.Data.Name)

	suite.request(http.MethodDelete, url, "", http.StatusNoContent)
	suite.request(http.MethodGet, url, "", http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCategoryErrors() {
	suite.request(http.MethodPost, "http://example.com/v1/categories", map[string]any{"envelopeId": uuid.New(), "name": "Meals"}, http.StatusNotFound)
	suite.request(http.MethodGet, "http://example.com/v1/categories?envelope=nope", "", http.StatusBadRequest)

	category := suite.createTestCategory(suite.createTestEnvelope("Living Cost").ID, "Meals")
	suite.request(http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s/breakdown", category.ID), "", http.StatusBadRequest)
	suite.request(http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s/breakdown?period=2025-13", category.ID), "", http.StatusBadRequest)
	suite.request(http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s/breakdown?period=2025-02", uuid.New()), "", http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestIncomeLifecycle() {
	income := suite.createTestIncome("2025-02-01", 8500000)
	suite.Assert().Equal("2025-02", income.Period.String())
	suite.Assert().False(income.IsAllocated)

	r := suite.request(http.MethodGet, "http://example.com/v1/incomes?period=2025-02", "", http.StatusOK)
	var list v1.IncomeListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Require().Len(list.Data, 1)

	r = suite.request(http.MethodGet, "http://example.com/v1/incomes?period=2025-03", "", http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 0)

	url := fmt.Sprintf("http://example.com/v1/incomes/%s", income.ID)
	suite.request(http.MethodGet, url, "", http.StatusOK)
	suite.request(http.MethodDelete, url, "", http.StatusNoContent)
	suite.request(http.MethodGet, url, "", http.StatusNotFound)

	suite.request(http.MethodPost, "http://example.com/v1/incomes", map[string]any{"date": "yesterday", "amount": 5}, http.StatusBadRequest)
	suite.request(http.MethodPost, "http://example.com/v1/incomes", map[string]any{"date": "2025-02-01", "amount": -5}, http.StatusBadRequest)
}
