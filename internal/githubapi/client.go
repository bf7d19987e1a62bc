package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/machinebox/graphql"
	"go.uber.org/zap"

	"github.com/Hristiyan-Anchev/issueboard/internal/importerrors"
)

const (
	// DefaultGraphQLEndpoint is the production GitHub GraphQL endpoint.
	DefaultGraphQLEndpoint = "https://api.github.com/graphql"
	// DefaultRESTRootURL is the production GitHub REST root.
	DefaultRESTRootURL = "https://api.github.com"
)

const (
	authorizationHeaderNameConstant       = "Authorization"
	authorizationHeaderTemplateConstant   = "Bearer %s"
	acceptHeaderNameConstant              = "Accept"
	acceptHeaderValueConstant             = "application/vnd.github+json"
	contentTypeHeaderNameConstant         = "Content-Type"
	contentTypeHeaderValueConstant        = "application/json"
	tokenMissingErrorMessageConstant      = "github api client requires an authentication token"
	requestEncodingErrorTemplateConstant  = "%s payload encoding failed: %w"
	requestCreationErrorTemplateConstant  = "%s request creation failed: %w"
	responseDecodingErrorTemplateConstant = "%s response decoding failed: %w"
	restOperationNameTemplateConstant     = "%s %s"
	graphQLCallDebugMessageConstant       = "graphql call"
	restCallDebugMessageConstant          = "rest call"
	logFieldOperationConstant             = "operation"
	logFieldStatusCodeConstant            = "status_code"
)

// HTTPDoer executes HTTP requests; *http.Client satisfies it.
type HTTPDoer interface {
	Do(request *http.Request) (*http.Response, error)
}

// ClientConfiguration overrides endpoints and the HTTP client, primarily for tests.
type ClientConfiguration struct {
	GraphQLEndpoint string
	RESTRootURL     string
	HTTPClient      *http.Client
}

// Client issues authenticated GraphQL and REST calls against the GitHub API.
// Any non-success response is returned as a terminal TransportError; the
// client performs no retries and no backoff.
type Client struct {
	graphQLClient *graphql.Client
	httpDoer      HTTPDoer
	restRootURL   string
	token         string
	logger        *zap.Logger
}

// NewClient constructs a Client using the provided token and optional overrides.
func NewClient(logger *zap.Logger, token string, configuration ClientConfiguration) (*Client, error) {
	trimmedToken := strings.TrimSpace(token)
	if len(trimmedToken) == 0 {
		return nil, errors.New(tokenMissingErrorMessageConstant)
	}

	resolvedLogger := logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	graphQLEndpoint := strings.TrimSpace(configuration.GraphQLEndpoint)
	if len(graphQLEndpoint) == 0 {
		graphQLEndpoint = DefaultGraphQLEndpoint
	}

	restRootURL := strings.TrimRight(strings.TrimSpace(configuration.RESTRootURL), "/")
	if len(restRootURL) == 0 {
		restRootURL = DefaultRESTRootURL
	}

	httpClient := configuration.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		graphQLClient: graphql.NewClient(graphQLEndpoint, graphql.WithHTTPClient(httpClient)),
		httpDoer:      httpClient,
		restRootURL:   restRootURL,
		token:         trimmedToken,
		logger:        resolvedLogger,
	}, nil
}

// RunQuery executes a GraphQL query or mutation and decodes the data envelope
// into responseTarget. HTTP failures and service-level errors entries both
// surface as TransportError.
func (client *Client) RunQuery(executionContext context.Context, operationName string, query string, variables map[string]any, responseTarget any) error {
	graphQLRequest := graphql.NewRequest(query)
	for variableName, variableValue := range variables {
		graphQLRequest.Var(variableName, variableValue)
	}
	graphQLRequest.Header.Set(authorizationHeaderNameConstant, fmt.Sprintf(authorizationHeaderTemplateConstant, client.token))
	graphQLRequest.Header.Set(acceptHeaderNameConstant, acceptHeaderValueConstant)

	client.logger.Debug(graphQLCallDebugMessageConstant, zap.String(logFieldOperationConstant, operationName))

	runError := client.graphQLClient.Run(executionContext, graphQLRequest, responseTarget)
	if runError != nil {
		return importerrors.TransportError{
			Operation: operationName,
			Message:   runError.Error(),
			Cause:     runError,
		}
	}

	return nil
}

// DoREST executes a REST call under the configured root. Status codes of 400
// and above become TransportError carrying the status and response body; the
// JSON response is decoded into responseTarget when it is non-nil.
func (client *Client) DoREST(executionContext context.Context, method string, path string, requestBody any, responseTarget any) error {
	operationName := fmt.Sprintf(restOperationNameTemplateConstant, method, path)

	var encodedBody io.Reader
	if requestBody != nil {
		serializedBody, encodingError := json.Marshal(requestBody)
		if encodingError != nil {
			return fmt.Errorf(requestEncodingErrorTemplateConstant, operationName, encodingError)
		}
		encodedBody = bytes.NewReader(serializedBody)
	}

	httpRequest, requestError := http.NewRequestWithContext(executionContext, method, client.restRootURL+path, encodedBody)
	if requestError != nil {
		return fmt.Errorf(requestCreationErrorTemplateConstant, operationName, requestError)
	}

	httpRequest.Header.Set(authorizationHeaderNameConstant, fmt.Sprintf(authorizationHeaderTemplateConstant, client.token))
	httpRequest.Header.Set(acceptHeaderNameConstant, acceptHeaderValueConstant)
	if requestBody != nil {
		httpRequest.Header.Set(contentTypeHeaderNameConstant, contentTypeHeaderValueConstant)
	}

	client.logger.Debug(restCallDebugMessageConstant, zap.String(logFieldOperationConstant, operationName))

	httpResponse, executionError := client.httpDoer.Do(httpRequest)
	if executionError != nil {
		return importerrors.TransportError{Operation: operationName, Cause: executionError}
	}
	defer httpResponse.Body.Close()

	responseBytes, readError := io.ReadAll(httpResponse.Body)
	if readError != nil {
		return importerrors.TransportError{Operation: operationName, StatusCode: httpResponse.StatusCode, Cause: readError}
	}

	if httpResponse.StatusCode >= http.StatusBadRequest {
		client.logger.Debug(
			restCallDebugMessageConstant,
			zap.String(logFieldOperationConstant, operationName),
			zap.Int(logFieldStatusCodeConstant, httpResponse.StatusCode),
		)
		return importerrors.TransportError{
			Operation:  operationName,
			StatusCode: httpResponse.StatusCode,
			Message:    strings.TrimSpace(string(responseBytes)),
		}
	}

	if responseTarget != nil {
		if decodingError := json.Unmarshal(responseBytes, responseTarget); decodingError != nil {
			return fmt.Errorf(responseDecodingErrorTemplateConstant, operationName, decodingError)
		}
	}

	return nil
}
