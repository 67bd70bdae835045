package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openrds/depositsync/internal/config"
	"github.com/openrds/depositsync/internal/domain/deposit"
)

var ctx = context.Background()

func serviceFor(server *httptest.Server) deposit.Service {
	return NewService(config.RemoteClient{Address: server.URL})
}

func TestHttpService_Update_Ok(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := serviceFor(server).Update(ctx, &deposit.Deposit{
		UserId:        "u1",
		ResearchIndex: "42",
		Port:          "2",
		Fields:        deposit.Fields{"title": "B"},
	})
	assert.NoError(t, err)
	assert.EqualValues(t, http.MethodPatch, gotMethod)
	assert.EqualValues(t, "/user/u1/research/42", gotPath)
	assert.EqualValues(t, "application/json", gotContentType)
}

func TestHttpService_Update_Rejected(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		err := serviceFor(server).Update(ctx, &deposit.Deposit{UserId: "u1", ResearchIndex: "42"})
		server.Close()
		if rejected, ok := err.(deposit.RemoteRejected); assert.True(t, ok, "expected RemoteRejected for status %d, got %v", status, err) {
			assert.EqualValues(t, status, rejected.StatusCode)
		}
	}
}

func TestHttpService_FindAll_Ok(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.EqualValues(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"list":[{"port":1,"metadata":{"title":"A"}},{"port":"osf","metadata":{"title":"B"}}]}`))
	}))
	defer server.Close()

	deposits, err := serviceFor(server).FindAll(ctx, "u1", "42")
	assert.NoError(t, err)
	if assert.Len(t, deposits, 2) {
		assert.EqualValues(t, deposit.Port("1"), deposits[0].Port)
		assert.EqualValues(t, "u1", deposits[0].UserId)
		assert.EqualValues(t, "42", deposits[0].ResearchIndex)
		assert.EqualValues(t, deposit.Fields{"title": "A"}, deposits[0].Fields)
		assert.EqualValues(t, deposit.Port("osf"), deposits[1].Port)
	}
}

func TestHttpService_FindAll_EmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"list":[]}`))
	}))
	defer server.Close()

	deposits, err := serviceFor(server).FindAll(ctx, "u1", "42")
	assert.NoError(t, err)
	assert.Len(t, deposits, 0)
}

func TestHttpService_FindAll_MissingList(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"list":null}`,
		`{"records":[]}`,
	}
	for _, body := range bodies {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		_, err := serviceFor(server).FindAll(ctx, "u1", "42")
		server.Close()
		assert.IsType(t, deposit.MalformedResponse{}, err, "body: %s", body)
	}
}

func TestHttpService_FindAll_ListNotAnArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"list":{"port":1}}`))
	}))
	defer server.Close()

	_, err := serviceFor(server).FindAll(ctx, "u1", "42")
	assert.IsType(t, deposit.MalformedResponse{}, err)
}

func TestHttpService_FindAll_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := serviceFor(server).FindAll(ctx, "u1", "42")
	assert.IsType(t, deposit.RemoteRejected{}, err)
}

func TestHttpService_FindOne_Ok(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"list":[{"port":1,"metadata":{"title":"A"}},{"port":2,"metadata":{"title":"B"}}]}`))
	}))
	defer server.Close()

	found, err := serviceFor(server).FindOne(ctx, "u1", "42", "2")
	assert.NoError(t, err)
	if assert.NotNil(t, found) {
		assert.EqualValues(t, deposit.Port("2"), found.Port)
		assert.EqualValues(t, deposit.Fields{"title": "B"}, found.Fields)
	}
}

func TestHttpService_FindOne_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"list":[{"port":1,"metadata":{}}]}`))
	}))
	defer server.Close()

	_, err := serviceFor(server).FindOne(ctx, "u1", "42", "99")
	if notFound, ok := err.(deposit.NotFound); assert.True(t, ok, "expected NotFound, got %v", err) {
		assert.EqualValues(t, deposit.Port("99"), notFound.Port)
	}
}

func TestHttpService_FindOne_FirstMatchWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"list":[{"port":2,"metadata":{"title":"first"}},{"port":2,"metadata":{"title":"second"}}]}`))
	}))
	defer server.Close()

	found, err := serviceFor(server).FindOne(ctx, "u1", "42", "2")
	assert.NoError(t, err)
	assert.EqualValues(t, deposit.Fields{"title": "first"}, found.Fields)
}

func TestHttpService_FetchSchema_Ok(t *testing.T) {
	schemaBody := `{"$schema":"http://json-schema.org/draft-07/schema#","type":"object","kernelversion":"custom"}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.EqualValues(t, "/jsonschema", r.URL.Path)
		_, _ = w.Write([]byte(schemaBody))
	}))
	defer server.Close()

	schema, err := serviceFor(server).FetchSchema(ctx)
	assert.NoError(t, err)
	if assert.NotNil(t, schema) {
		assert.EqualValues(t, schemaBody, string(schema.Raw))
		assert.EqualValues(t, "custom", schema.KernelVersion)
	}
}

func TestHttpService_FetchSchema_InvalidJson(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"oops"`))
	}))
	defer server.Close()

	_, err := serviceFor(server).FetchSchema(ctx)
	assert.IsType(t, deposit.MalformedResponse{}, err)
}

func TestHttpService_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening any more

	_, err := serviceFor(server).FindAll(ctx, "u1", "42")
	assert.IsType(t, deposit.TransportFailure{}, err)
}

func TestHttpService_TlsVerification(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"list":[]}`))
	}))
	defer server.Close()

	// The default rejects the self-signed test cert
	strict := NewService(config.RemoteClient{Address: server.URL})
	_, err := strict.FindAll(ctx, "u1", "42")
	assert.IsType(t, deposit.TransportFailure{}, err)

	// The explicit override accepts it
	lax := NewService(config.RemoteClient{Address: server.URL, InsecureSkipVerify: true})
	deposits, err := lax.FindAll(ctx, "u1", "42")
	assert.NoError(t, err)
	assert.Len(t, deposits, 0)
}

func TestHttpService_BasicAuth(t *testing.T) {
	var gotUser, gotPassword string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPassword, _ = r.BasicAuth()
		_, _ = w.Write([]byte(`{"list":[]}`))
	}))
	defer server.Close()

	withAuth := NewService(config.RemoteClient{
		Address: server.URL,
		User:    &config.BasicAuthUser{Name: "rds", Password: "passw0rd"},
	})
	_, err := withAuth.FindAll(ctx, "u1", "42")
	assert.NoError(t, err)
	assert.EqualValues(t, "rds", gotUser)
	assert.EqualValues(t, "passw0rd", gotPassword)
}
