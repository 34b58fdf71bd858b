package entities

import "github.com/GitNimay/ai-add-generator/internal/domain/valueobjects"

// OperationFailure is the error payload of a finished remote operation.
type OperationFailure struct {
	Code    int
	Status  string
	Message string
}

// VideoOperation is the local view of a remote video generation job.
// handle is whatever the provider needs to poll it again.
type VideoOperation struct {
	name     string
	done     bool
	location *valueobjects.VideoLocation
	failure  *OperationFailure
	handle   any
}

func NewVideoOperation(name string, done bool, handle any) *VideoOperation {
	return &VideoOperation{
		name:   name,
		done:   done,
		handle: handle,
	}
}

func (o *VideoOperation) Name() string {
	return o.name
}

func (o *VideoOperation) Done() bool {
	return o.done
}

func (o *VideoOperation) Handle() any {
	return o.handle
}

func (o *VideoOperation) Location() *valueobjects.VideoLocation {
	return o.location
}

func (o *VideoOperation) SetLocation(location *valueobjects.VideoLocation) {
	o.location = location
}

func (o *VideoOperation) Failure() *OperationFailure {
	return o.failure
}

func (o *VideoOperation) SetFailure(failure *OperationFailure) {
	o.failure = failure
}
