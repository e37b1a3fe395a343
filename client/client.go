package client

type Client interface {
	Employees() EmployeeClient
}

type client struct {
	transport *Transport
}

func NewClient(baseUrl string, opts ...TransportOptions) Client {
	return &client{
		transport: NewTransport(baseUrl, opts...),
	}
}

func (c *client) Employees() EmployeeClient {
	return NewEmployeeClient(c.transport)
}
