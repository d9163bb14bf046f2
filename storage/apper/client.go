// Package apper implements the record store contract against the hosted
// low-code platform's REST API.
package apper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core"
)

type Client struct {
	baseURL   string
	projectID string
	apiKey    string
	http      *http.Client
}

var _ core.RecordStore = (*Client)(nil)

func NewClient(conf *core.Config) *Client {
	return &Client{
		baseURL:   conf.Store.BaseURL,
		projectID: conf.Store.ProjectID,
		apiKey:    conf.Store.APIKey,
		http:      &http.Client{Timeout: conf.Store.Timeout},
	}
}

type (
	fieldSelector struct {
		Field struct {
			Name string `json:"Name"`
		} `json:"field"`
	}

	wherePayload struct {
		FieldName string        `json:"FieldName"`
		Operator  string        `json:"Operator"`
		Values    []interface{} `json:"Values"`
		Include   bool          `json:"Include"`
	}

	queryPayload struct {
		Fields []fieldSelector `json:"fields,omitempty"`
		Where  []wherePayload  `json:"where,omitempty"`
	}

	recordsPayload struct {
		Records []core.Record `json:"records"`
	}

	deletePayload struct {
		RecordIDs []int `json:"RecordIds"`
	}
)

func newQueryPayload(q core.RecordQuery) queryPayload {
	var p queryPayload
	for _, name := range q.Fields {
		var fs fieldSelector
		fs.Field.Name = name
		p.Fields = append(p.Fields, fs)
	}
	for _, w := range q.Where {
		p.Where = append(p.Where, wherePayload{
			FieldName: w.FieldName,
			Operator:  w.Operator,
			Values:    w.Values,
			Include:   true,
		})
	}
	return p
}

// do posts the payload and decodes the store's response envelope into out.
// Transport failures are returned as errors; application failures come back
// inside the envelope with Success=false.
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	body := new(bytes.Buffer)
	if payload != nil {
		if err := json.NewEncoder(body).Encode(payload); err != nil {
			return errors.Wrap(err, "encoding request payload")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Project-Id", c.projectID)
	req.Header.Set("X-Request-Id", uuid.NewString())

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "calling record store")
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusInternalServerError {
		return errors.Errorf("record store unavailable: %s", res.Status)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decoding record store response")
	}
	return nil
}

func (c *Client) Fetch(ctx context.Context, collection string, q core.RecordQuery) (core.FetchResult, error) {
	var res core.FetchResult
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/records/%s/fetch", collection), newQueryPayload(q), &res)
	return res, err
}

func (c *Client) GetByID(ctx context.Context, collection string, id int, q core.RecordQuery) (core.GetResult, error) {
	var res core.GetResult
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/records/%s/%d", collection, id), newQueryPayload(q), &res)
	return res, err
}

func (c *Client) Create(ctx context.Context, collection string, records ...core.Record) (core.WriteResult, error) {
	var res core.WriteResult
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/records/%s", collection), recordsPayload{Records: records}, &res)
	return res, err
}

func (c *Client) Update(ctx context.Context, collection string, records ...core.Record) (core.WriteResult, error) {
	var res core.WriteResult
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/v1/records/%s", collection), recordsPayload{Records: records}, &res)
	return res, err
}

func (c *Client) Delete(ctx context.Context, collection string, ids ...int) (core.DeleteResult, error) {
	var res core.DeleteResult
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/records/%s", collection), deletePayload{RecordIDs: ids}, &res)
	return res, err
}
