package domain

import (
	sharedDomain "github.com/davicafu/sharedkernel/shared/domain"
)

// Topic por defecto para los eventos de partner.
const PartnerTopic = "partner-events"

var (
	PartnerRegisteredType = sharedDomain.EventTypeName[PartnerRegistered]("PartnerRegistered")
	PartnerRenamedType    = sharedDomain.EventTypeName[PartnerRenamed]("PartnerRenamed")
	PartnerSuspendedType  = sharedDomain.EventTypeName[PartnerSuspended]("PartnerSuspended")
	PartnerRemovedType    = sharedDomain.EventTypeName[PartnerRemoved]("PartnerRemoved")
	PartnerReinstatedType = sharedDomain.EventTypeName[PartnerReinstated]("PartnerReinstated")
)

type PartnerRegistered struct {
	sharedDomain.BaseEvent
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PartnerRenamed struct {
	sharedDomain.BaseEvent
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
}

type PartnerSuspended struct {
	sharedDomain.BaseEvent
}

type PartnerRemoved struct {
	sharedDomain.BaseEvent
	RemovedBy string `json:"removedBy"`
}

type PartnerReinstated struct {
	sharedDomain.BaseEvent
}
