package server

// Server groups the HTTP handlers of every resource.
type Server struct {
	TransactionServer
	CatalogServer
}

func NewServer(
	transactionServer TransactionServer,
	catalogServer CatalogServer,
) Server {
	return Server{
		TransactionServer: transactionServer,
		CatalogServer:     catalogServer,
	}
}
