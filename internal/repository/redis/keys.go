package redis

import "fmt"

const ns = "loket:v1"

func KeyQueueList() string {
	return ns + ":queues:all"
}

func KeyDisplayCurrent() string {
	return ns + ":display:current"
}

func KeyStats(day string) string {
	return fmt.Sprintf("%s:stats:%s", ns, day)
}

func KeyIdemNewTicket(idemKey string) string {
	return fmt.Sprintf("%s:idem:new:%s", ns, idemKey)
}

func ChannelQueueChanged() string {
	return ns + ":queues:changed"
}
