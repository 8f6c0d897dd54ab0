package channels

// StaticRepo is a fixed in-memory channel table. In a real deployment this
// would be backed by the channel configuration database.
type StaticRepo struct {
	channels map[string]Channel
}

var _ Repo = (*StaticRepo)(nil)

// NewStaticRepo returns the default channel table.
func NewStaticRepo() *StaticRepo {
	return &StaticRepo{
		channels: map[string]Channel{
			"1":      {ID: "1", PostLoginBU: "SME"},
			"2":      {ID: "2", PostLoginBU: "RETAIL"},
			"sme":    {ID: "sme", PostLoginBU: "SME"},
			"retail": {ID: "retail", PostLoginBU: "RETAIL"},
		},
	}
}

func (r *StaticRepo) Resolve(channelID string) (*Channel, error) {
	channel, ok := r.channels[channelID]
	if !ok {
		return nil, ErrNotFound
	}
	return &channel, nil
}
