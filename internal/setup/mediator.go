package setup

import (
	"Staffline/internal/behaviours"
	"Staffline/internal/commands"
	"Staffline/internal/events"
	"Staffline/internal/mediator"

	"github.com/The127/ioc"
)

func Mediator(dc *ioc.DependencyCollection) {
	m := mediator.NewMediator()

	mediator.RegisterHandler(m, commands.HandleRegisterEmployee)
	mediator.RegisterHandler(m, commands.HandleVerifyEmployeeCode)

	mediator.RegisterEventHandler(m, events.SendVerificationMailOnEmployeeRegisteredEvent)

	// outermost first
	mediator.RegisterBehaviour(m, behaviours.MetricsBehaviour)
	mediator.RegisterBehaviour(m, behaviours.LoggingBehaviour)
	mediator.RegisterBehaviour(m, behaviours.ValidationBehaviour)

	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) mediator.Mediator {
		return m
	})
}
