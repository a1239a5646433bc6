package shell

import (
	"yunion.io/x/pkg/util/printutils"

	"yunion.io/x/glancestate/pkg/glance"
	"yunion.io/x/glancestate/pkg/imagestate"
)

// SEnv carries the authenticated catalog client together with a
// reconciler configured from the global flags.
type SEnv struct {
	Client     *glance.SGlanceClient
	Reconciler *imagestate.SReconciler
}

func printList(data interface{}, columns []string) {
	printutils.PrintInterfaceList(data, 0, 0, 0, columns)
}

func printObject(obj interface{}) {
	printutils.PrintInterfaceObject(obj)
}
