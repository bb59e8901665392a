package eventbus

// Global topic declarations. Kept in one place so they can move to
// configuration later without chasing call sites.

var (
	TopicBlockImpressions = NewTopic("unitu-block.impression.events")
)

var AllTopics = []Topic{
	TopicBlockImpressions,
}
