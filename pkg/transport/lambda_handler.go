package transport

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"github.com/awslabs/aws-lambda-go-api-proxy/gorillamux"
	"github.com/gorilla/mux"
)

// LambdaHandler adapta eventos do API Gateway para o router HTTP. O contexto
// do evento (incluindo as claims do authorizer) segue no contexto da
// requisição e é lido por identity.APIGatewayAuthenticator.
type LambdaHandler struct {
	adapter *gorillamux.GorillaMuxAdapter
	// AfterRequest roda depois de cada evento, antes do retorno ao runtime.
	AfterRequest func()
}

// NewLambdaHandler cria uma nova instância do adaptador
func NewLambdaHandler(router *mux.Router) *LambdaHandler {
	return &LambdaHandler{adapter: gorillamux.New(router)}
}

// Handle processa a requisição Lambda (payload REST, versão 1).
func (h *LambdaHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp, err := h.adapter.ProxyWithContext(ctx, *core.NewSwitchableAPIGatewayRequestV1(&req))
	if h.AfterRequest != nil {
		h.AfterRequest()
	}
	if resp == nil || resp.Version1() == nil {
		return core.GatewayTimeout(), err
	}
	return *resp.Version1(), err
}
