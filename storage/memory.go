package storage

import (
	"context"
	"sort"
	"sync"
)

// In-memory implementations of every storage interface. They back the test
// suite and local development without a DynamoDB endpoint, and mirror the
// Dynamo semantics: conditional creates, keyed overwrites, atomic transfers.

type MemoryCycleStorage struct {
	mu     sync.Mutex
	cycles map[string]Cycle
}

func NewMemoryCycleStorage() *MemoryCycleStorage {
	return &MemoryCycleStorage{cycles: make(map[string]Cycle)}
}

func (s *MemoryCycleStorage) Get(_ context.Context, id string) (*Cycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cycles[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &c, nil
}

func (s *MemoryCycleStorage) GetAll(_ context.Context) ([]*Cycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Cycle, 0, len(s.cycles))
	for _, c := range s.cycles {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryCycleStorage) Put(_ context.Context, cycle *Cycle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycles[cycle.ID] = *cycle
	return nil
}

func (s *MemoryCycleStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cycles, id)
	return nil
}

type nominationKey struct {
	cycleID string
	voterID string
}

type MemoryNominationStorage struct {
	mu          sync.Mutex
	nominations map[nominationKey]Nomination
	order       []nominationKey
}

func NewMemoryNominationStorage() *MemoryNominationStorage {
	return &MemoryNominationStorage{nominations: make(map[nominationKey]Nomination)}
}

func (s *MemoryNominationStorage) Create(_ context.Context, nomination *Nomination) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := nominationKey{nomination.CycleID, nomination.VoterID}
	if _, ok := s.nominations[key]; ok {
		return ErrItemAlreadyExists
	}
	s.nominations[key] = *nomination
	s.order = append(s.order, key)
	return nil
}

func (s *MemoryNominationStorage) Delete(_ context.Context, cycleID, voterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := nominationKey{cycleID, voterID}
	delete(s.nominations, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryNominationStorage) GetByCycle(_ context.Context, cycleID string) ([]*Nomination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Nomination
	for _, key := range s.order {
		if key.cycleID != cycleID {
			continue
		}
		if n, ok := s.nominations[key]; ok {
			n := n
			out = append(out, &n)
		}
	}
	return out, nil
}

type validationKey struct {
	cycleID     string
	validatorID string
}

type MemoryValidationStorage struct {
	mu          sync.Mutex
	validations map[validationKey]Validation
	order       []validationKey
}

func NewMemoryValidationStorage() *MemoryValidationStorage {
	return &MemoryValidationStorage{validations: make(map[validationKey]Validation)}
}

func (s *MemoryValidationStorage) Create(_ context.Context, validation *Validation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := validationKey{validation.CycleID, validation.ValidatorID}
	if _, ok := s.validations[key]; ok {
		return ErrItemAlreadyExists
	}
	s.validations[key] = *validation
	s.order = append(s.order, key)
	return nil
}

func (s *MemoryValidationStorage) Replace(_ context.Context, validation *Validation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := validationKey{validation.CycleID, validation.ValidatorID}
	if _, ok := s.validations[key]; !ok {
		s.order = append(s.order, key)
	}
	s.validations[key] = *validation
	return nil
}

func (s *MemoryValidationStorage) Delete(_ context.Context, cycleID, validatorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := validationKey{cycleID, validatorID}
	delete(s.validations, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryValidationStorage) GetByCycle(_ context.Context, cycleID string) ([]*Validation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Validation
	for _, key := range s.order {
		if key.cycleID != cycleID {
			continue
		}
		if v, ok := s.validations[key]; ok {
			v := v
			out = append(out, &v)
		}
	}
	return out, nil
}

type MemoryWinnerStorage struct {
	mu      sync.Mutex
	winners map[string]Winner
}

func NewMemoryWinnerStorage() *MemoryWinnerStorage {
	return &MemoryWinnerStorage{winners: make(map[string]Winner)}
}

func (s *MemoryWinnerStorage) Get(_ context.Context, cycleID string) (*Winner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.winners[cycleID]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &w, nil
}

func (s *MemoryWinnerStorage) Create(_ context.Context, winner *Winner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.winners[winner.CycleID]; ok {
		return ErrItemAlreadyExists
	}
	s.winners[winner.CycleID] = *winner
	return nil
}

type MemoryProfileStorage struct {
	mu       sync.Mutex
	profiles map[string]Profile
}

func NewMemoryProfileStorage(profiles ...*Profile) *MemoryProfileStorage {
	s := &MemoryProfileStorage{profiles: make(map[string]Profile)}
	for _, p := range profiles {
		s.profiles[p.ID] = *p
	}
	return s
}

func (s *MemoryProfileStorage) Get(_ context.Context, id string) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &p, nil
}

func (s *MemoryProfileStorage) GetAll(_ context.Context) ([]*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type MemoryNominationAreaStorage struct {
	mu    sync.Mutex
	areas map[string]NominationArea
}

func NewMemoryNominationAreaStorage() *MemoryNominationAreaStorage {
	return &MemoryNominationAreaStorage{areas: make(map[string]NominationArea)}
}

func (s *MemoryNominationAreaStorage) Get(_ context.Context, id string) (*NominationArea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.areas[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *MemoryNominationAreaStorage) GetAll(_ context.Context) ([]*NominationArea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*NominationArea, 0, len(s.areas))
	for _, a := range s.areas {
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryNominationAreaStorage) Create(_ context.Context, area *NominationArea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.areas[area.ID]; ok {
		return ErrItemAlreadyExists
	}
	s.areas[area.ID] = *area
	return nil
}

func (s *MemoryNominationAreaStorage) Update(_ context.Context, area *NominationArea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.areas[area.ID] = *area
	return nil
}

func (s *MemoryNominationAreaStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.areas, id)
	return nil
}

type MemoryRewardStorage struct {
	mu      sync.Mutex
	rewards map[string]Reward
}

func NewMemoryRewardStorage() *MemoryRewardStorage {
	return &MemoryRewardStorage{rewards: make(map[string]Reward)}
}

func (s *MemoryRewardStorage) Get(_ context.Context, id string) (*Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rewards[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &r, nil
}

func (s *MemoryRewardStorage) GetAll(_ context.Context) ([]*Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Reward, 0, len(s.rewards))
	for _, r := range s.rewards {
		r := r
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryRewardStorage) Create(_ context.Context, reward *Reward) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rewards[reward.ID]; ok {
		return ErrItemAlreadyExists
	}
	s.rewards[reward.ID] = *reward
	return nil
}

func (s *MemoryRewardStorage) Update(_ context.Context, reward *Reward) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rewards[reward.ID] = *reward
	return nil
}

func (s *MemoryRewardStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rewards, id)
	return nil
}

type MemoryRecognitionProgramStorage struct {
	mu       sync.Mutex
	programs map[string]RecognitionProgram
}

func NewMemoryRecognitionProgramStorage() *MemoryRecognitionProgramStorage {
	return &MemoryRecognitionProgramStorage{programs: make(map[string]RecognitionProgram)}
}

func (s *MemoryRecognitionProgramStorage) Get(_ context.Context, id string) (*RecognitionProgram, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.programs[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &p, nil
}

func (s *MemoryRecognitionProgramStorage) GetAll(_ context.Context) ([]*RecognitionProgram, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*RecognitionProgram, 0, len(s.programs))
	for _, p := range s.programs {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryRecognitionProgramStorage) Create(_ context.Context, program *RecognitionProgram) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.programs[program.ID]; ok {
		return ErrItemAlreadyExists
	}
	s.programs[program.ID] = *program
	return nil
}

type MemoryRecognitionStorage struct {
	mu           sync.Mutex
	recognitions []Recognition
}

func NewMemoryRecognitionStorage() *MemoryRecognitionStorage {
	return &MemoryRecognitionStorage{}
}

func (s *MemoryRecognitionStorage) Create(_ context.Context, recognition *Recognition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recognitions = append(s.recognitions, *recognition)
	return nil
}

func (s *MemoryRecognitionStorage) GetByProgram(_ context.Context, programID string) ([]*Recognition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Recognition
	for _, r := range s.recognitions {
		if r.ProgramID == programID {
			r := r
			out = append(out, &r)
		}
	}
	return out, nil
}

type balanceKey struct {
	profileID string
	programID string
}

type MemoryPointsBalanceStorage struct {
	mu       sync.Mutex
	balances map[balanceKey]PointsBalance
}

func NewMemoryPointsBalanceStorage() *MemoryPointsBalanceStorage {
	return &MemoryPointsBalanceStorage{balances: make(map[balanceKey]PointsBalance)}
}

func (s *MemoryPointsBalanceStorage) Get(_ context.Context, profileID, programID string) (*PointsBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.balances[balanceKey{profileID, programID}]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &b, nil
}

func (s *MemoryPointsBalanceStorage) Put(_ context.Context, balance *PointsBalance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[balanceKey{balance.ProfileID, balance.ProgramID}] = *balance
	return nil
}

func (s *MemoryPointsBalanceStorage) Transfer(_ context.Context, programID, senderID, receiverID string, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sender, ok := s.balances[balanceKey{senderID, programID}]
	if !ok || sender.Distributable < points {
		return ErrInsufficientPoints
	}
	receiver := s.balances[balanceKey{receiverID, programID}]
	receiver.ProfileID = receiverID
	receiver.ProgramID = programID

	sender.Distributable -= points
	receiver.Earned += points
	s.balances[balanceKey{senderID, programID}] = sender
	s.balances[balanceKey{receiverID, programID}] = receiver
	return nil
}

func (s *MemoryPointsBalanceStorage) Spend(_ context.Context, profileID, programID string, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.balances[balanceKey{profileID, programID}]
	if !ok || b.Earned < points {
		return ErrInsufficientPoints
	}
	b.Earned -= points
	s.balances[balanceKey{profileID, programID}] = b
	return nil
}
