package ports

import "python-versions/internal/types"

type ObserverPort interface {
	Observe(event types.CheckEvent)
}
