package classify

// Context carries what the conversation has already established, so that a
// follow-up like "그럼 거기서 맛집은?" keeps the district of the previous
// turn. One Context exists per chat session.
type Context struct {
	LastRegion string
	LastTopic  string
}

// Merge folds the current turn's classification into the context and
// returns the effective region and topic for retrieval. A turn that names
// a region or topic overwrites the remembered one; a turn that names
// neither inherits it.
func (c *Context) Merge(res Result) (region, topic string) {
	if res.Region != "" {
		c.LastRegion = res.Region
	}
	if t := res.Topic(); t != "" {
		c.LastTopic = t
	}
	return c.LastRegion, c.LastTopic
}
