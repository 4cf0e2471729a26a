package redisx

// Rate limit window counter: ratelimit:{client}:{window_start_unix} -> hits
const KeyRateLimit = "ratelimit:%s:%d"
