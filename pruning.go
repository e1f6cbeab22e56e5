package arbor

import (
	"fmt"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/tree"
	"github.com/sirupsen/logrus"
)

/*
Prune simplifies the given tree in place with reduced-error pruning against
the given tuning dataset, which should not share instances with the one the
tree was grown from.

Internal nodes are visited bottom-up, children before their parent. Each one
is tentatively collapsed into a leaf predicting the majority label of the
training instances that reached it, and the collapse is kept if the accuracy
of the whole tree on the tuning dataset does not decrease. Otherwise the node
gets its children back.

Prune returns tree.ErrEmptyExamples if the tuning dataset has no instances,
or the error obtained classifying one of its instances. On error, the node
being evaluated is restored, but decisions already made are kept.

Prune must not run while the tree is being used to classify samples.
*/
func Prune(t *tree.Tree, tuning *dataset.Dataset, opts *Options) error {
	if tuning.Count() == 0 {
		return tree.ErrEmptyExamples
	}
	p := &pruner{t, tuning, opts.logger()}
	return p.prune(t.RootSlot())
}

type pruner struct {
	tree   *tree.Tree
	tuning *dataset.Dataset
	log    logrus.FieldLogger
}

func (p *pruner) prune(slot tree.Slot) error {
	in, ok := slot.Node().(*tree.Internal)
	if !ok {
		return nil
	}
	for _, cs := range in.ChildSlots() {
		err := p.prune(cs)
		if err != nil {
			return err
		}
	}
	accuracyBefore, err := p.tree.Accuracy(p.tuning)
	if err != nil {
		return fmt.Errorf("pruning %s node on %s: %w", in.Edge(), in.Attribute().Name(), err)
	}
	_, err = slot.Replace(tree.NewLeaf(in.Edge(), in.Majority()))
	if err != nil {
		return err
	}
	accuracyAfter, err := p.tree.Accuracy(p.tuning)
	if err != nil {
		slot.Replace(in)
		return fmt.Errorf("pruning %s node on %s: %w", in.Edge(), in.Attribute().Name(), err)
	}
	entry := p.log.WithFields(logrus.Fields{
		"edge":            in.Edge().String(),
		"attribute":       in.Attribute().Name(),
		"accuracy_before": accuracyBefore,
		"accuracy_after":  accuracyAfter,
	})
	if accuracyAfter >= accuracyBefore {
		entry.Debug("node collapsed")
		return nil
	}
	_, err = slot.Replace(in)
	if err != nil {
		return err
	}
	entry.Debug("node kept")
	return nil
}
