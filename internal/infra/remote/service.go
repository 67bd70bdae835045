package remote

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"go.elastic.co/apm/module/apmhttp"

	"github.com/openrds/depositsync/internal/config"
	"github.com/openrds/depositsync/internal/domain/deposit"
	"github.com/openrds/depositsync/internal/domain/research"
	"github.com/openrds/depositsync/internal/domain/user"
)

// How much of a rejection body we keep around for diagnostics.
const maxCapturedBodyBytes = 2048

type httpService struct {
	client      *http.Client
	baseAddress string
	user        *config.BasicAuthUser
}

// NewService returns a deposit.Service that talks to the remote metadata
// service over HTTP based on the given conf.
//
// The service is stateless and safe for concurrent use; each call is a
// single attempt with no internal retries.
func NewService(conf config.RemoteClient) deposit.Service {
	transport := &http.Transport{}
	if conf.InsecureSkipVerify {
		log.Warn().
			Str("address", conf.Address).
			Msg("TLS certificate verification against the remote metadata service is DISABLED via remote.insecure_skip_verify")
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &httpService{
		client:      &http.Client{Transport: apmhttp.WrapRoundTripper(transport)},
		baseAddress: strings.TrimSuffix(conf.Address, "/"),
		user:        conf.User,
	}
}

func (s *httpService) Update(ctx context.Context, d *deposit.Deposit) error {
	payload, err := json.Marshal(d.Fields)
	if err != nil {
		return deposit.MalformedResponse{Reason: fmt.Sprintf("could not encode metadata fields: %v", err)}
	}
	resp, err := s.do(ctx, http.MethodPatch, s.recordsUrl(d.UserId, d.ResearchIndex), bytes.NewReader(payload))
	if err != nil {
		return deposit.TransportFailure{Underlying: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return unexpectedStatusError(resp)
	}
	// Success bodies carry nothing we use.
	_, _ = io.Copy(ioutil.Discard, resp.Body)
	return nil
}

func (s *httpService) FindAll(ctx context.Context, userId user.Id, researchIndex research.Index) ([]deposit.Deposit, error) {
	resp, err := s.do(ctx, http.MethodGet, s.recordsUrl(userId, researchIndex), nil)
	if err != nil {
		return nil, deposit.TransportFailure{Underlying: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, unexpectedStatusError(resp)
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, deposit.TransportFailure{Underlying: err}
	}

	var envelope struct {
		List json.RawMessage `json:"list"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, deposit.MalformedResponse{Reason: fmt.Sprintf("body is not a JSON object: %v", err)}
	}
	if len(envelope.List) == 0 || string(envelope.List) == "null" {
		return nil, deposit.MalformedResponse{Reason: "response has no [list] field"}
	}

	var entries []listEntry
	// UseNumber so that numeric ports survive canonicalisation untouched
	decoder := json.NewDecoder(bytes.NewReader(envelope.List))
	decoder.UseNumber()
	if err := decoder.Decode(&entries); err != nil {
		return nil, deposit.MalformedResponse{Reason: fmt.Sprintf("[list] field is not an array of records: %v", err)}
	}

	deposits := make([]deposit.Deposit, 0, len(entries))
	for _, entry := range entries {
		port, err := deposit.PortFromValue(entry.Port)
		if err != nil {
			return nil, deposit.MalformedResponse{Reason: err.Error()}
		}
		deposits = append(deposits, deposit.Deposit{
			UserId:        userId,
			ResearchIndex: researchIndex,
			Port:          *port,
			Fields:        entry.Metadata,
		})
	}
	return deposits, nil
}

func (s *httpService) FindOne(ctx context.Context, userId user.Id, researchIndex research.Index, port deposit.Port) (*deposit.Deposit, error) {
	all, err := s.FindAll(ctx, userId, researchIndex)
	if err != nil {
		return nil, err
	}
	// First match in remote-provided order wins.
	for i := range all {
		if all[i].Port == port {
			return &all[i], nil
		}
	}
	return nil, deposit.NotFound{Port: port, ResearchIndex: researchIndex}
}

func (s *httpService) FetchSchema(ctx context.Context) (*deposit.Schema, error) {
	resp, err := s.do(ctx, http.MethodGet, s.baseAddress+"/jsonschema", nil)
	if err != nil {
		return nil, deposit.TransportFailure{Underlying: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, unexpectedStatusError(resp)
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, deposit.TransportFailure{Underlying: err}
	}
	if !json.Valid(body) {
		return nil, deposit.MalformedResponse{Reason: "schema document is not valid JSON"}
	}
	// The document itself is opaque to us; the kernel version tag is lifted
	// out for logging only.
	var tag struct {
		KernelVersion string `json:"kernelversion"`
	}
	_ = json.Unmarshal(body, &tag)
	return &deposit.Schema{Raw: body, KernelVersion: tag.KernelVersion}, nil
}

type listEntry struct {
	Port     interface{}    `json:"port"`
	Metadata deposit.Fields `json:"metadata"`
}

func (s *httpService) recordsUrl(userId user.Id, researchIndex research.Index) string {
	return fmt.Sprintf("%s/user/%s/research/%s",
		s.baseAddress,
		url.PathEscape(string(userId)),
		url.PathEscape(string(researchIndex)),
	)
}

func (s *httpService) do(ctx context.Context, method string, target string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	if s.user != nil {
		req.SetBasicAuth(s.user.Name, s.user.Password)
	}
	return s.client.Do(req)
}

func unexpectedStatusError(resp *http.Response) deposit.RemoteRejected {
	captured, _ := ioutil.ReadAll(io.LimitReader(resp.Body, maxCapturedBodyBytes))
	return deposit.RemoteRejected{StatusCode: resp.StatusCode, Body: string(captured)}
}
