package metrics

import "sync/atomic"

type Counters struct {
	OrdersCreated      uint64
	OrdersFailed       uint64
	PaymentsVerified   uint64
	SignaturesRejected uint64
	DownloadsServed    uint64
	DownloadsDenied    uint64
	WebhooksReceived   uint64
	EmailsSent         uint64
	EmailsFailed       uint64
}

func (c *Counters) IncOrdersCreated() {
	atomic.AddUint64(&c.OrdersCreated, 1)
}

func (c *Counters) IncOrdersFailed() {
	atomic.AddUint64(&c.OrdersFailed, 1)
}

func (c *Counters) IncPaymentsVerified() {
	atomic.AddUint64(&c.PaymentsVerified, 1)
}

func (c *Counters) IncSignaturesRejected() {
	atomic.AddUint64(&c.SignaturesRejected, 1)
}

func (c *Counters) IncDownloadsServed() {
	atomic.AddUint64(&c.DownloadsServed, 1)
}

func (c *Counters) IncDownloadsDenied() {
	atomic.AddUint64(&c.DownloadsDenied, 1)
}

func (c *Counters) IncWebhooksReceived() {
	atomic.AddUint64(&c.WebhooksReceived, 1)
}

func (c *Counters) IncEmailsSent() {
	atomic.AddUint64(&c.EmailsSent, 1)
}

func (c *Counters) IncEmailsFailed() {
	atomic.AddUint64(&c.EmailsFailed, 1)
}
