package v1_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"

	v1 "github.com/envelope-zero/ledger/pkg/controllers/v1"
	"github.com/envelope-zero/ledger/test"
	"github.com/google/uuid"
)

const statement = "Date,Payee,Memo,Outflow,Inflow\n" +
	"02/01/2025,Employer,February salary,,8500000\n" +
	"02/05/2025,Market,Vegetables,2500000,\n" +
	"02/06/2025,Restaurant,,800000,\n"

// uploadFile returns a multipart body containing the file and the headers
// for the request.
func (suite *TestSuiteStandard) uploadFile(name, content string) (*bytes.Buffer, map[string]string) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	w, err := mw.CreateFormFile("file", name)
	suite.Require().Nil(err)

	_, err = w.Write([]byte(content))
	suite.Require().Nil(err)
	suite.Require().Nil(mw.Close())

	return body, map[string]string{"Content-Type": mw.FormDataContentType()}
}

func (suite *TestSuiteStandard) TestStatementPreview() {
	body, headers := suite.uploadFile("statement.csv", statement)

	r := test.Request(suite.T(), suite.ledger, http.MethodPost, "http://example.com/v1/import/csv/preview", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var preview v1.StatementPreviewResponse
	test.DecodeResponse(suite.T(), &r, &preview)
	suite.Require().Len(preview.Data, 3)
	suite.Assert().True(preview.Data[0].Inflow)
	suite.Assert().Equal("2025-02-05", preview.Data[1].Date)

	// Nothing is booked by the preview
	r = suite.request(http.MethodGet, "http://example.com/v1/incomes", "", http.StatusOK)
	var incomes v1.IncomeListResponse
	test.DecodeResponse(suite.T(), &r, &incomes)
	suite.Assert().Len(incomes.Data, 0)
}

func (suite *TestSuiteStandard) TestStatementImport() {
	meals, _ := suite.expenseScenario()
	body, headers := suite.uploadFile("statement.csv", statement)

	r := test.Request(suite.T(), suite.ledger, http.MethodPost, fmt.Sprintf("http://example.com/v1/import/csv?category=%s", meals.ID), body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var result v1.StatementResponse
	test.DecodeResponse(suite.T(), &r, &result)
	suite.Assert().Len(result.Data.Incomes, 1)
	suite.Assert().Len(result.Data.Expenses, 1)
	suite.Require().Len(result.Data.Rejected, 1)
	suite.Assert().Equal("INSUFFICIENT_BUDGET", result.Data.Rejected[0].Code)
	suite.Assert().Equal("Restaurant", result.Data.Rejected[0].Row.Payee)

	suite.assertDecimal(500000, suite.breakdown(meals.ID, "2025-02").Remaining)
}

func (suite *TestSuiteStandard) TestStatementImportErrors() {
	meals, _ := suite.expenseScenario()
	url := fmt.Sprintf("http://example.com/v1/import/csv?category=%s", meals.ID)

	tests := []struct {
		name     string
		url      string
		file     string
		content  string
		status   int
		contains string
	}{
		{"No category", "http://example.com/v1/import/csv", "statement.csv", statement, http.StatusBadRequest, "category query parameter"},
		{"Invalid category", "http://example.com/v1/import/csv?category=abc", "statement.csv", statement, http.StatusBadRequest, "not a valid UUID"},
		{"Unknown category", fmt.Sprintf("http://example.com/v1/import/csv?category=%s", uuid.New()), "statement.csv", statement, http.StatusNotFound, ""},
		{"Wrong suffix", url, "statement.txt", statement, http.StatusBadRequest, ".csv"},
		{"Broken file", url, "statement.csv", "Date,Payee,Memo,Outflow,Inflow\n02/01/2025,Market,,,\n", http.StatusBadRequest, "no amount is set"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			body, headers := suite.uploadFile(tt.file, tt.content)

			r := test.Request(suite.T(), suite.ledger, http.MethodPost, tt.url, body, headers)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
			suite.Assert().Contains(suite.apiError(&r).Error, tt.contains)
		})
	}

	// No file at all
	r := suite.request(http.MethodPost, url, "", http.StatusBadRequest)
	suite.Assert().Contains(suite.apiError(&r).Error, "you must send a file")
}
