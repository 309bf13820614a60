package events

// Entity - тип измененной сущности
type Entity string

const (
	EntityMember       Entity = "member"
	EntityTrainer      Entity = "trainer"
	EntityEquipment    Entity = "equipment"
	EntityMembership   Entity = "membership"
	EntitySubscription Entity = "subscription"
	EntityTransaction  Entity = "transaction"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event - уведомление об изменении, рассылается открытым страницам
type Event struct {
	Entity Entity `json:"entity"`
	Action Action `json:"action"`
	ID     uint   `json:"id"`
	GymID  uint   `json:"gymId,omitempty"`
}

// Publisher доставляет события подписчикам. Publish не должен блокировать.
type Publisher interface {
	Publish(ev Event)
}

// Nop - публикатор, который ничего не делает (тесты, cmd/migrate)
type Nop struct{}

func (Nop) Publish(Event) {}

// Recorder запоминает события (для тестов)
type Recorder struct {
	Events []Event
}

func (r *Recorder) Publish(ev Event) {
	r.Events = append(r.Events, ev)
}
