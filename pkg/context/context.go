package context

import "context"

type ContextKey string

var (
	RequestIDKey = ContextKey("X-Request-Id")
	ActorIDKey   = ContextKey("X-Actor-Id")
	JobIDKey     = ContextKey("X-Job-Id")
	JobTypeKey   = ContextKey("X-Job-Type")
)

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	value, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return value
}

// SetActorID records the system user attributed to writes made during this request.
func SetActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, ActorIDKey, actorID)
}

func GetActorID(ctx context.Context) string {
	value, ok := ctx.Value(ActorIDKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetJobID(ctx context.Context, jobID string) context.Context {
	return context.WithValue(ctx, JobIDKey, jobID)
}

func GetJobID(ctx context.Context) string {
	value, ok := ctx.Value(JobIDKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetJobType(ctx context.Context, jobType string) context.Context {
	return context.WithValue(ctx, JobTypeKey, jobType)
}

func GetJobType(ctx context.Context) string {
	value, ok := ctx.Value(JobTypeKey).(string)
	if !ok {
		return ""
	}
	return value
}
