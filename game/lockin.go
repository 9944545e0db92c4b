package game

type LockInKind uint8

const (
	LockNone LockInKind = iota
	LockRampage
	LockUproar
	LockChargingUp
	LockProtecting
	LockRecharging
	LockVanishing
	LockBide
	numLockIns
)

const NumLockIns = int(numLockIns)

var lockInNames = [numLockIns]string{"none", "rampage", "uproar", "charging up", "protecting", "recharging", "vanishing", "bide"}

func (k LockInKind) String() string {
	if k >= numLockIns {
		return "unknown"
	}
	return lockInNames[k]
}

// LockIn is the multi-turn effect a Pokemon is under. Only one can be active.
// Counter is the turns remaining for rampage and uproar and the turns left to
// store energy for bide. Damage accumulates for bide.
type LockIn struct {
	Kind    LockInKind
	Counter uint8
	Move    MoveName
	Damage  int
}

func (l LockIn) Active() bool { return l.Kind != LockNone }

// ForcedMove returns the move a locked Pokemon must use next, if any.
func (l LockIn) ForcedMove() (MoveName, bool) {
	switch l.Kind {
	case LockRampage, LockUproar, LockChargingUp, LockVanishing, LockBide:
		return l.Move, true
	case LockRecharging:
		return Recharge, true
	}
	return MoveNone, false
}

// Rampage locks the user into move for counter more turns.
func Rampage(move MoveName, counter uint8) LockIn {
	return LockIn{Kind: LockRampage, Counter: counter, Move: move}
}
